package host

type (
	// Context resolves interned host identities.
	// It stands for the compiler's type context and is passed explicitly.
	Context struct {
		Crate string

		Types  map[Ty]any // TyKind
		Allocs map[AllocID]Alloc
	}

	Alloc struct {
		Mutability Mutability
		Size       uint64
	}
)

func NewContext(crate string) *Context {
	return &Context{
		Crate:  crate,
		Types:  make(map[Ty]any),
		Allocs: make(map[AllocID]Alloc),
	}
}

// Kind returns the interned kind of t.
func (c *Context) Kind(t Ty) (any, bool) {
	if c == nil {
		return nil, false
	}

	k, ok := c.Types[t]

	return k, ok
}

func (c *Context) Alloc(id AllocID) (Alloc, bool) {
	if c == nil {
		return Alloc{}, false
	}

	a, ok := c.Allocs[id]

	return a, ok
}

// Define sets the kind of t. Redefinition keeps the first kind.
func (c *Context) Define(t Ty, k any) bool {
	if c.Types == nil {
		c.Types = make(map[Ty]any)
	}

	if _, ok := c.Types[t]; ok {
		return false
	}

	c.Types[t] = k

	return true
}
