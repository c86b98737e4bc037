// Package assets keeps named shaders and textures and rebuilds shaders when their
// files change.
package assets

import (
	"errors"
	"fmt"
	"log"
	"path/filepath"
	"sort"

	"github.com/workingdodo/opengl-tests/internal/shader"
	"github.com/workingdodo/opengl-tests/internal/texture"
)

// ErrNotFound is returned when no asset has the requested name.
var ErrNotFound = errors.New("asset not found")

type Manager struct {
	shaders  map[string]*shader.Shader
	textures map[string]*texture.Texture2D
	// files each shader was built from
	sources map[string][]string
	watcher *shader.Watcher
}

func NewManager() *Manager {
	return &Manager{
		shaders:  make(map[string]*shader.Shader),
		textures: make(map[string]*texture.Texture2D),
		sources:  make(map[string][]string),
	}
}

// LoadShader builds a shader from two files and stores it under name.
func (m *Manager) LoadShader(name, vertexPath, fragmentPath string) (*shader.Shader, error) {
	s, err := shader.New(vertexPath, fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("shader %q: %w", name, err)
	}
	if old, ok := m.shaders[name]; ok {
		old.Delete()
	}
	m.shaders[name] = s
	m.sources[name] = []string{vertexPath, fragmentPath}
	return s, nil
}

func (m *Manager) Shader(name string) (*shader.Shader, error) {
	s, ok := m.shaders[name]
	if !ok {
		return nil, fmt.Errorf("shader %q: %w", name, ErrNotFound)
	}
	return s, nil
}

// LoadTexture loads an image file into a texture stored under name.
func (m *Manager) LoadTexture(name, path string, opts texture.Options) (*texture.Texture2D, error) {
	t, err := texture.Load(path, opts)
	if err != nil {
		return nil, fmt.Errorf("texture %q: %w", name, err)
	}
	if old, ok := m.textures[name]; ok {
		old.Delete()
	}
	m.textures[name] = t
	return t, nil
}

func (m *Manager) Texture(name string) (*texture.Texture2D, error) {
	t, ok := m.textures[name]
	if !ok {
		return nil, fmt.Errorf("texture %q: %w", name, ErrNotFound)
	}
	return t, nil
}

// Watch starts watching the files of every shader loaded so far.
func (m *Manager) Watch() error {
	var paths []string
	for _, files := range m.sources {
		paths = append(paths, files...)
	}
	w, err := shader.Watch(paths...)
	if err != nil {
		return err
	}
	if m.watcher != nil {
		m.watcher.Close()
	}
	m.watcher = w
	return nil
}

// Poll rebuilds shaders whose files changed since the last call and returns their
// names, sorted. It never blocks. A shader that fails to rebuild keeps its previous
// program and the error is logged.
func (m *Manager) Poll() []string {
	if m.watcher == nil {
		return nil
	}
	select {
	case <-m.watcher.Changed():
	default:
		return nil
	}
	return m.reload(m.watcher.Drain())
}

func (m *Manager) reload(changed []string) []string {
	var reloaded []string
	for name, s := range m.shaders {
		if !uses(m.sources[name], changed) {
			continue
		}
		if err := s.Reload(); err != nil {
			log.Printf("keeping previous %q shader: %v", name, err)
			continue
		}
		log.Printf("reloaded %q shader", name)
		reloaded = append(reloaded, name)
	}
	sort.Strings(reloaded)
	return reloaded
}

// uses reports whether one of files is among the changed absolute paths.
func uses(files, changed []string) bool {
	for _, p := range files {
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		for _, c := range changed {
			if abs == c {
				return true
			}
		}
	}
	return false
}

// Close releases every asset and stops the watcher.
func (m *Manager) Close() {
	if m.watcher != nil {
		m.watcher.Close()
		m.watcher = nil
	}
	for name, s := range m.shaders {
		s.Delete()
		delete(m.shaders, name)
		delete(m.sources, name)
	}
	for name, t := range m.textures {
		t.Delete()
		delete(m.textures, name)
	}
}
