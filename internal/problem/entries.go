package problem

import "github.com/cwbudde/ccl/internal/types"

// EntryKind discriminates the value-name environment's entries — the value
// half of spec.md component C.
type EntryKind uint8

const (
	EntryVariable EntryKind = iota
	EntryFunction
	EntryParameter // function or method parameter
	EntryInstance
	EntryStrucSelf
	EntryClassSelf
	EntryQuantParam // quantifier-bound local parameter
)

// Entry binds a name to one value-level referent.
type Entry struct {
	Name string
	Kind EntryKind

	VariableID VariableID
	FuncID     FuncID
	Param      ParamRef
	InstanceID InstanceID
	StrucID    StructureID
	ClassID    ClassID

	// QuantType carries a quantifier-bound parameter's declared type — it is
	// not reachable via Param alone since quantifier parameters are not
	// Problem-owned entities (see Parameter's doc comment in expr.go).
	QuantType types.Type
}

// Entries is a stack of frames searched newest-first: later entries shadow
// earlier ones with the same name (spec.md §4.4's lookup rule). It is
// never mutated in place — Add returns a new Entries, so a resolve call
// that descends into a binding form can extend the environment for its own
// subtree without affecting a sibling's view of it.
type Entries struct {
	entries []Entry
}

func NewEntries(entries []Entry) Entries {
	return Entries{entries: entries}
}

func (e Entries) Add(entry Entry) Entries {
	v := make([]Entry, len(e.entries), len(e.entries)+1)
	copy(v, e.entries)
	return Entries{entries: append(v, entry)}
}

func (e Entries) AddAll(more []Entry) Entries {
	v := make([]Entry, len(e.entries), len(e.entries)+len(more))
	copy(v, e.entries)
	return Entries{entries: append(v, more...)}
}

func (e Entries) Get(name string) (Entry, bool) {
	for i := len(e.entries) - 1; i >= 0; i-- {
		if e.entries[i].Name == name {
			return e.entries[i], true
		}
	}
	return Entry{}, false
}

// Entries builds the global value-name environment: every variable,
// function and instance, in declaration order (spec.md §4.4 phase 2).
func (p *Problem) Entries() Entries {
	var v []Entry
	for _, x := range p.Variables {
		v = append(v, Entry{Name: x.Name, Kind: EntryVariable, VariableID: x.ID})
	}
	for _, x := range p.Functions {
		v = append(v, Entry{Name: x.Name, Kind: EntryFunction, FuncID: x.ID})
	}
	for _, x := range p.Instances {
		v = append(v, Entry{Name: x.Name, Kind: EntryInstance, InstanceID: x.ID})
	}
	return NewEntries(v)
}

// ---------- type-name environment ----------

// TypeEntryKind discriminates the type-name environment's entries.
type TypeEntryKind uint8

const (
	TypeEntryStructure TypeEntryKind = iota
	TypeEntryClass
)

type TypeEntry struct {
	Name    string
	Kind    TypeEntryKind
	StrucID StructureID
	ClassID ClassID
}

// TypeEntries mirrors Entries but for type names (structures and classes),
// used only during resolver phase 1.
type TypeEntries struct {
	entries []TypeEntry
}

func NewTypeEntries(entries []TypeEntry) TypeEntries {
	return TypeEntries{entries: entries}
}

func (e TypeEntries) Get(name string) (TypeEntry, bool) {
	for i := len(e.entries) - 1; i >= 0; i-- {
		if e.entries[i].Name == name {
			return e.entries[i], true
		}
	}
	return TypeEntry{}, false
}

// TypeEntries builds the global type-name environment: every structure and
// class, in declaration order (spec.md §4.4 phase 1).
func (p *Problem) TypeEntries() TypeEntries {
	var v []TypeEntry
	for _, s := range p.Structures {
		v = append(v, TypeEntry{Name: s.Name, Kind: TypeEntryStructure, StrucID: s.ID})
	}
	for _, c := range p.Classes {
		v = append(v, TypeEntry{Name: c.Name, Kind: TypeEntryClass, ClassID: c.ID})
	}
	return NewTypeEntries(v)
}
