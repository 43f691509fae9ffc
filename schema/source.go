package schema

// SourceUnit is one compilation unit of the tree under analysis. It is the
// contract boundary between the extractor and whatever walker produced the
// tree: the extractor never touches the filesystem itself.
type SourceUnit struct {
	Path       string        // Filesystem path of the unit, relative to the tree root
	Package    string        // Declared package name, empty if missing
	LineCount  int           // Raw line count of the unit
	Imports    []string      // Import statements, one entry per statement
	Classes    []SourceClass // Declared classes and interfaces
	Constructs []string      // Simple names of types instantiated with new, one entry per expression
}

// SourceClass is one class or interface declared in a unit.
type SourceClass struct {
	Name        string         // Simple name, e.g. "OrderService"
	IsInterface bool           // True for interface declarations
	Annotations []string       // Annotation simple names, without the '@'
	Methods     []SourceMethod // Declared methods
}

// SourceMethod is one declared method with the call expressions in its body.
type SourceMethod struct {
	Name        string       // Method name
	Annotations []string     // Annotation simple names, without the '@'
	Calls       []SourceCall // Call expressions inside the body
}

// SourceCall is one call expression. Target is the resolved simple name of
// the receiver's class when the walker could resolve it, empty otherwise.
type SourceCall struct {
	Receiver string // Static text of the receiver expression, e.g. "orderService"
	Method   string // Invoked method name
	Target   string // Resolved target class simple name, "" if unresolved
}

// MethodCount returns the number of methods declared across all classes.
func (u SourceUnit) MethodCount() int {
	n := 0
	for _, c := range u.Classes {
		n += len(c.Methods)
	}
	return n
}
