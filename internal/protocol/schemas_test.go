package protocol_test

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

func TestSchemas_ValidateSamples(t *testing.T) {
	compile := func(name string) *jsonschema.Schema {
		t.Helper()
		p := filepath.Join("..", "..", "schemas", name)
		s, err := jsonschema.Compile(p)
		if err != nil {
			t.Fatalf("compile %s: %v", name, err)
		}
		return s
	}

	validate := func(s *jsonschema.Schema, v any) {
		t.Helper()
		if err := s.Validate(v); err != nil {
			t.Fatalf("validate: %v", err)
		}
	}

	actionSchema := compile("action.schema.json")
	tickSchema := compile("tick.schema.json")
	fullStateSchema := compile("full_state.schema.json")

	var selectTool any
	_ = json.Unmarshal([]byte(`{
	  "type":"select_tool",
	  "payload":{"tool":"miner"}
	}`), &selectTool)
	validate(actionSchema, selectTool)

	var moveCursor any
	_ = json.Unmarshal([]byte(`{
	  "type":"move_cursor",
	  "payload":{"dx":1,"dy":0}
	}`), &moveCursor)
	validate(actionSchema, moveCursor)

	var place any
	_ = json.Unmarshal([]byte(`{"type":"place"}`), &place)
	validate(actionSchema, place)

	var tick any
	_ = json.Unmarshal([]byte(`{
	  "type":"tick",
	  "payload":{"tick":120,"money":57,"totalExported":3,"totalEarned":7}
	}`), &tick)
	validate(tickSchema, tick)

	var fullState any
	_ = json.Unmarshal([]byte(`{
	  "type":"full_state",
	  "payload":{
	    "width":40,"height":30,
	    "money":50,"totalExported":0,"totalEarned":0,
	    "produced":[0,0,0,0,0,0],
	    "cursorX":0,"cursorY":0,
	    "tool":"none","beltDir":"right",
	    "tick":0,
	    "machines":[{
	      "x":2,"y":3,"kind":"Miner","mode":"iron",
	      "progress":4,"recipeTime":10,
	      "output":["iron_ore"],
	      "produced":1,"utilization":0.8
	    }],
	    "belts":[{"x":4,"y":3,"item":"iron_ore","source":"left"}],
	    "log":["Welcome to Tiny Factory!"]
	  }
	}`), &fullState)
	validate(fullStateSchema, fullState)
}

func TestSchemas_RejectUnknownAction(t *testing.T) {
	p := filepath.Join("..", "..", "schemas", "action.schema.json")
	s, err := jsonschema.Compile(p)
	if err != nil {
		t.Fatalf("compile: %v", err)
	}
	var bad any
	_ = json.Unmarshal([]byte(`{"type":"teleport"}`), &bad)
	if err := s.Validate(bad); err == nil {
		t.Fatal("expected unknown action type to fail validation")
	}
}
