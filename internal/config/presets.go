package config

var Presets = map[string]map[string]*Config{
	"tower": {
		"demo": {
			Scene: "tower", Substeps: 24, Width: 800, Height: 600, Frames: 600,
			Gravity: GravityConfig{Y: 0.98}, Stiffness: 0.5,
		},
		"coarse": {
			Scene: "tower", Substeps: 4, Width: 800, Height: 600, Frames: 600,
			Gravity: GravityConfig{Y: 0.98}, Stiffness: 0.5,
		},
		"windy": {
			Scene: "tower", Substeps: 24, Width: 800, Height: 600, Frames: 900,
			Gravity: GravityConfig{X: 0.25, Y: 0.98}, Stiffness: 0.5,
		},
	},
	"chain": {
		"slack": {
			Scene: "chain", Substeps: 24, Width: 800, Height: 600, Frames: 600,
			Gravity: GravityConfig{Y: 0.98}, Stiffness: 0.2,
		},
		"taut": {
			Scene: "chain", Substeps: 32, Width: 800, Height: 600, Frames: 600,
			Gravity: GravityConfig{Y: 0.98}, Stiffness: 1,
		},
	},
	"bridge": {
		"stiff": {
			Scene: "bridge", Substeps: 32, Width: 800, Height: 600, Frames: 600,
			Gravity: GravityConfig{Y: 0.98}, Stiffness: 0.9,
		},
		"sagging": {
			Scene: "bridge", Substeps: 24, Width: 800, Height: 600, Frames: 600,
			Gravity: GravityConfig{Y: 0.98}, Stiffness: 0.1,
		},
	},
	"rectangles": {
		"drop": {
			Scene: "rectangles", Substeps: 24, Width: 800, Height: 600, Frames: 400,
			Gravity: GravityConfig{Y: 0.98}, Stiffness: 0.5,
		},
		"moon": {
			Scene: "rectangles", Substeps: 24, Width: 800, Height: 600, Frames: 800,
			Gravity: GravityConfig{Y: 0.16}, Stiffness: 0.5,
		},
	},
}

func GetPreset(scene, preset string) *Config {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	cfg, ok := scenePresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(scene string) []string {
	scenePresets, ok := Presets[scene]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(scenePresets))
	for name := range scenePresets {
		names = append(names, name)
	}
	return names
}
