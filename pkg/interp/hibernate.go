package interp

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"gotranslator/pkg/ir"
)

// humanReadableState is the JSON-serializable snapshot of machine state.
type humanReadableState struct {
	PC    int          `json:"pc"`
	Steps int          `json:"steps"`
	Vars  []savedValue `json:"vars"`
}

type savedValue struct {
	Name  string `json:"name"`
	Type  string `json:"type"`
	Value string `json:"value"`
}

// HibernateToBytes serialises the loaded program and the execution state
// into an in-memory ZIP archive and returns the raw bytes.
func (m *Machine) HibernateToBytes() ([]byte, error) {
	buf := new(bytes.Buffer)
	zw := zip.NewWriter(buf)

	state := humanReadableState{PC: m.PC, Steps: m.Steps}
	names := make([]string, 0, len(m.Vars))
	for name := range m.Vars {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		v := m.Vars[name]
		state.Vars = append(state.Vars, savedValue{Name: name, Type: v.Type.String(), Value: v.String()})
	}

	jsonData, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal machine_state: %w", err)
	}
	if err := writeZipEntry(zw, "machine_state.json", jsonData); err != nil {
		return nil, err
	}
	if err := writeZipEntry(zw, "program.ir", []byte(ir.Format(m.program))); err != nil {
		return nil, err
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close zip: %w", err)
	}
	return buf.Bytes(), nil
}

// RestoreFromBytes replaces the machine's program and state with the
// contents of a hibernation archive. The machine is ready to Run again
// from the saved instruction.
func (m *Machine) RestoreFromBytes(data []byte) error {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return fmt.Errorf("open zip: %w", err)
	}

	fileMap := make(map[string]*zip.File, len(r.File))
	for _, f := range r.File {
		fileMap[f.Name] = f
	}

	text, err := readZipEntry(fileMap, "program.ir")
	if err != nil {
		return err
	}
	program, err := ir.Parse(string(text))
	if err != nil {
		return fmt.Errorf("parse program.ir: %w", err)
	}
	if err := m.Load(program); err != nil {
		return err
	}

	jsonData, err := readZipEntry(fileMap, "machine_state.json")
	if err != nil {
		return err
	}
	var state humanReadableState
	if err := json.Unmarshal(jsonData, &state); err != nil {
		return fmt.Errorf("unmarshal machine_state: %w", err)
	}
	if state.PC < 0 || state.PC > len(program) {
		return fmt.Errorf("saved pc %d outside program of %d instructions", state.PC, len(program))
	}

	for _, sv := range state.Vars {
		t, ok := parseDataType(sv.Type)
		if !ok {
			return fmt.Errorf("restore %s: unknown type %q", sv.Name, sv.Type)
		}
		v, err := cast(t, StringValue(sv.Value))
		if err != nil {
			return fmt.Errorf("restore %s: %w", sv.Name, err)
		}
		m.Vars[sv.Name] = v
	}
	m.PC = state.PC
	m.Steps = state.Steps
	m.Halted = m.PC >= len(program)
	return nil
}

// HibernateToFile writes the hibernation archive to the given file path.
func (m *Machine) HibernateToFile(path string) error {
	data, err := m.HibernateToBytes()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// RestoreFromFile reads a hibernation archive from the given file path and
// restores the machine.
func (m *Machine) RestoreFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.RestoreFromBytes(data)
}

func parseDataType(name string) (ir.DataType, bool) {
	for _, t := range ir.DataTypes {
		if t.String() == name {
			return t, true
		}
	}
	return 0, false
}

func writeZipEntry(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.Create(name)
	if err != nil {
		return fmt.Errorf("create zip entry %q: %w", name, err)
	}
	_, err = w.Write(data)
	return err
}

func readZipEntry(fileMap map[string]*zip.File, name string) ([]byte, error) {
	f, ok := fileMap[name]
	if !ok {
		return nil, fmt.Errorf("zip entry %q not found", name)
	}
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("open zip entry %q: %w", name, err)
	}
	defer rc.Close()
	return io.ReadAll(rc)
}
