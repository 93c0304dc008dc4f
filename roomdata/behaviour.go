package roomdata

import (
	"fmt"
	"io/fs"

	"gopkg.in/yaml.v3"
)

// OpCode enumerates the closed set of scripted behaviour operations. NPC
// behaviours are parameterized data, not user-programmable code.
type OpCode uint8

const (
	OpMoveRelative OpCode = iota
	OpTurnCW
	OpTurnCCW
	OpTurnToFace
	OpPause
	OpLoop
	OpEnd
)

var opNames = map[string]OpCode{
	"MoveRelative": OpMoveRelative,
	"TurnCW":       OpTurnCW,
	"TurnCCW":      OpTurnCCW,
	"TurnToFace":   OpTurnToFace,
	"Pause":        OpPause,
	"Loop":         OpLoop,
	"End":          OpEnd,
}

// ScriptOp is one behaviour step. Distance is in tiles (OpMoveRelative),
// Ticks in engine ticks (OpPause).
type ScriptOp struct {
	Op       OpCode
	Distance float64
	Ticks    int
}

// Behaviour is a named, ordered op list identified by the behaviour id the
// placement layer references.
type Behaviour struct {
	Name string
	Ops  []ScriptOp
}

type behaviourFile struct {
	Name   string `yaml:"Name"`
	Script []struct {
		Op       string  `yaml:"Op"`
		Distance float64 `yaml:"Distance"`
		Ticks    int     `yaml:"Ticks"`
	} `yaml:"Script"`
}

// LoadBehaviour parses one behaviour%d.yaml file from dir.
func LoadBehaviour(fsys fs.FS, dir string, id int) (*Behaviour, error) {
	path := fmt.Sprintf("%s/behaviour%d.yaml", dir, id)
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("read behaviour %d: %w", id, err)
	}
	var f behaviourFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse behaviour %d: %w", id, err)
	}

	b := &Behaviour{Name: f.Name}
	for i, step := range f.Script {
		op, ok := opNames[step.Op]
		if !ok {
			return nil, fmt.Errorf("behaviour %d step %d: unknown op %q", id, i, step.Op)
		}
		b.Ops = append(b.Ops, ScriptOp{Op: op, Distance: step.Distance, Ticks: step.Ticks})
	}
	return b, nil
}

// LoadBehaviours loads every behaviour id referenced by the placements,
// skipping ids whose file is missing. Missing behaviours leave the entity
// idle rather than failing the room.
func LoadBehaviours(fsys fs.FS, dir string, placements []Placement) map[int]*Behaviour {
	out := make(map[int]*Behaviour)
	for _, p := range placements {
		if p.Behaviour == 0 {
			continue
		}
		if _, ok := out[p.Behaviour]; ok {
			continue
		}
		b, err := LoadBehaviour(fsys, dir, p.Behaviour)
		if err != nil {
			continue
		}
		out[p.Behaviour] = b
	}
	return out
}
