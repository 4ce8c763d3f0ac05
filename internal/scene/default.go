package scene

// DefaultDocument returns the built-in starting document: a single ground
// plane under an empty root group, with one placeholder asset. Sessions
// start from this when no document is imported.
func DefaultDocument() *Document {
	return &Document{
		Version: 1,
		Metadata: map[string]any{
			"name": "Untitled World",
		},
		Assets: []*Asset{
			{
				ID:   "asset-ground",
				URI:  "builtin://ground",
				Type: "model",
			},
		},
		Nodes: []*Node{
			{
				ID:   "root",
				Name: "Root",
				Children: []*Node{
					{
						ID:   "ground",
						Name: "Ground",
						Tags: []string{"static"},
						Transform: &Transform{
							Position: &Vec3{X: 0, Y: 0, Z: 0},
							Scale:    &Vec3{X: 10, Y: 1, Z: 10},
						},
						Asset: &AssetRef{AssetID: "asset-ground"},
					},
				},
			},
		},
	}
}
