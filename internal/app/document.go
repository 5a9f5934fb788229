package app

import (
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/dshills/wmevent/internal/rna"
	"github.com/dshills/wmevent/internal/wm"
)

// SceneType is the document type of the scene.
const SceneType = "Scene"

// Paths of the scene structs the operators edit.
const (
	PathView      = "view"
	PathSelection = "selection"
	PathText      = "text"
	PathRuler     = "ruler"
	PathActive    = "objects.cube"
)

// defaultScene is the scene a new application starts with.
const defaultScene = `{
  "view": {"_type": "View", "zoom": 1, "pan_x": 0, "pan_y": 0},
  "selection": {"_type": "Selection", "count": 0, "mode": "SET", "last": ""},
  "text": {"_type": "Text", "body": ""},
  "ruler": {"_type": "Ruler", "length": 0},
  "objects": {
    "cube": {"_type": "Object", "name": "Cube", "x": 0, "y": 0, "selected": false},
    "light": {"_type": "Object", "name": "Light", "x": 4, "y": 2, "selected": false}
  }
}`

// scene gives operators typed access to the scene document through the
// store, so every write is published on the bus.
type scene struct {
	store *rna.Store
	doc   *rna.Document
}

func newScene(store *rna.Store, raw []byte) (*scene, error) {
	if raw == nil {
		raw = []byte(defaultScene)
	}
	doc, err := store.Create(SceneType, raw)
	if err != nil {
		return nil, fmt.Errorf("create scene: %w", err)
	}
	return &scene{store: store, doc: doc}, nil
}

func (s *scene) pointer(path string) (rna.Pointer, error) {
	p, ok := s.doc.Resolve(path)
	if !ok {
		return rna.Pointer{}, fmt.Errorf("scene %s: %w", path, rna.ErrNotFound)
	}
	return p, nil
}

func (s *scene) get(path, prop string) gjson.Result {
	p, err := s.pointer(path)
	if err != nil {
		return gjson.Result{}
	}
	return s.doc.Get(p, prop)
}

func (s *scene) set(path, prop string, value any) error {
	p, err := s.pointer(path)
	if err != nil {
		return err
	}
	return s.store.Set(p, prop, value)
}

// objects returns the object keys in document order.
func (s *scene) objects() []string {
	var keys []string
	s.doc.Get(s.doc.Pointer(), "objects").ForEach(func(k, _ gjson.Result) bool {
		keys = append(keys, k.String())
		return true
	})
	return keys
}

// selectAll sets every object's selection and the selection count.
func (s *scene) selectAll(selected bool) error {
	n := 0
	for _, k := range s.objects() {
		if err := s.set("objects."+k, "selected", selected); err != nil {
			return err
		}
		if selected {
			n++
		}
	}
	return s.set(PathSelection, "count", n)
}

// reloadScene replaces the scene with raw. Subscriptions to the old document
// follow to the new one where their path still resolves, and listeners of
// file.read.post are told.
func (app *Application) reloadScene(raw []byte) error {
	old := app.scene.doc.ID
	doc, err := app.manager.Store().Reload(old, raw)
	if err != nil {
		return err
	}
	app.scene.doc = doc
	bus := app.manager.Bus()
	bus.UpdateByID(old, doc.ID)
	bus.PublishStatic(wm.TopicFileReadPost)
	return nil
}

// ReloadScene replaces the scene document with raw JSON.
func (app *Application) ReloadScene(raw []byte) error {
	return app.reloadScene(raw)
}
