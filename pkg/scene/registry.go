package scene

import (
	"sort"
	"strings"

	"github.com/pkg/errors"

	"github.com/df07/go-bvh-pathtracer/pkg/core"
	"github.com/df07/go-bvh-pathtracer/pkg/renderer"
)

// SceneInfo describes a preset scene
type SceneInfo struct {
	ID          string // Name used on the command line and in settings files
	DisplayName string
	Description string
}

type preset struct {
	info  SceneInfo
	build func() (*Scene, error)
}

var presets = map[string]preset{}

func register(id, description string, build func() (*Scene, error)) {
	presets[id] = preset{
		info: SceneInfo{
			ID:          id,
			DisplayName: titleCase(id),
			Description: description,
		},
		build: build,
	}
}

func init() {
	register("spheres", "Random field of diffuse, metal and glass spheres with motion blur and depth of field",
		func() (*Scene, error) { return NewSpheresScene(), nil })
	register("cornell", "Cornell box with an area light and two rotated boxes",
		func() (*Scene, error) { return NewCornellScene(), nil })
	register("cornell-smoke", "Cornell box with the boxes replaced by constant density smoke", NewCornellSmokeScene)
	register("shapes", "Cylinders, cones, triangles and meshes on a checkered ground", NewShapesScene)
	register("empty", "No objects; every pixel is the background",
		func() (*Scene, error) { return NewEmptyScene(), nil })
}

// NewEmptyScene creates a scene with nothing in it
func NewEmptyScene() *Scene {
	cameraConfig := renderer.DefaultCameraConfig()
	cameraConfig.Background = core.NewVec3(0.70, 0.80, 1.00)
	return New("empty", cameraConfig)
}

// List returns the preset scenes ordered by ID
func List() []SceneInfo {
	infos := make([]SceneInfo, 0, len(presets))
	for _, p := range presets {
		infos = append(infos, p.info)
	}
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].ID < infos[j].ID
	})
	return infos
}

// Create builds the preset scene registered under id
func Create(id string) (*Scene, error) {
	p, ok := presets[id]
	if !ok {
		return nil, errors.Errorf("unknown scene %q (available: %s)", id, strings.Join(ids(), ", "))
	}

	s, err := p.build()
	if err != nil {
		return nil, errors.Wrapf(err, "building scene %q", id)
	}
	return s, nil
}

func ids() []string {
	infos := List()
	names := make([]string, len(infos))
	for i, info := range infos {
		names[i] = info.ID
	}
	return names
}

// titleCase converts an ID such as "cornell-smoke" to "Cornell Smoke"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
