package server

import "testing"

func TestGetToolDefinitions(t *testing.T) {
	expected := []string{
		"icon_load",
		"icon_sample_color",
		"icon_sample_colors_multi",
		"icon_alpha_coverage",
		"icon_crop",
		"icon_preview",
		"icon_strip_background",
		"icon_fix",
	}

	toolMap := make(map[string]Tool)
	for _, tool := range GetToolDefinitions() {
		if _, dup := toolMap[tool.Name]; dup {
			t.Errorf("duplicate tool %s", tool.Name)
		}
		toolMap[tool.Name] = tool
	}

	for _, name := range expected {
		if _, ok := toolMap[name]; !ok {
			t.Errorf("Expected tool %s not found", name)
		}
	}
	if len(toolMap) != len(expected) {
		t.Errorf("got %d tools, want %d", len(toolMap), len(expected))
	}
}

func TestToolDefinitions_Structure(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		t.Run(tool.Name, func(t *testing.T) {
			if tool.Description == "" {
				t.Error("Tool description is empty")
			}
			if tool.InputSchema["type"] != "object" {
				t.Errorf("InputSchema type: got %v, want 'object'", tool.InputSchema["type"])
			}
			props, ok := tool.InputSchema["properties"].(map[string]interface{})
			if !ok {
				t.Fatal("InputSchema properties missing")
			}
			if _, ok := props["path"]; !ok {
				t.Error("every tool takes a path")
			}

			required, ok := tool.InputSchema["required"].([]string)
			if !ok {
				t.Fatal("'required' should be a string slice")
			}
			hasPath := false
			for _, r := range required {
				if _, ok := props[r]; !ok {
					t.Errorf("required field %s is not a property", r)
				}
				if r == "path" {
					hasPath = true
				}
			}
			if !hasPath {
				t.Error("Tool should require 'path' parameter")
			}
		})
	}
}

func TestToolDefinitions_Thresholds(t *testing.T) {
	for _, tool := range GetToolDefinitions() {
		if tool.Name != "icon_strip_background" && tool.Name != "icon_fix" {
			continue
		}
		props := tool.InputSchema["properties"].(map[string]interface{})
		for _, name := range []string{"white_min", "grey_max_diff", "grey_min", "light_min", "iterations"} {
			if _, ok := props[name]; !ok {
				t.Errorf("%s should accept %s", tool.Name, name)
			}
		}
	}
}
