package moovm

import (
	"encoding/gob"
	"io"
)

func init() {
	gob.Register(Int(0))
	gob.Register(Float(0))
	gob.Register(Str(""))
	gob.Register(Bool(false))
	gob.Register(List{})
	gob.Register(ObjID(""))
	gob.Register(OpCode(0))
}

// Snapshot writes the task's frame chain. Frames sharing a Program are
// restored with separate copies of it.
func (t *Task) Snapshot(w io.Writer) error {
	return gob.NewEncoder(w).Encode(t)
}

func RestoreTask(r io.Reader) (*Task, error) {
	var t Task
	if err := gob.NewDecoder(r).Decode(&t); err != nil {
		return nil, err
	}
	return &t, nil
}
