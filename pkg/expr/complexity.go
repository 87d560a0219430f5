package expr

func (l *Leaf) NodeCount() int { return 1 }
func (c *Composite) NodeCount() int {
	return 1 + c.Left.NodeCount() + c.Right.NodeCount()
}

// Resistors returns the number of catalog resistors used, i.e. the leaf count.
func (l *Leaf) Resistors() int { return 1 }
func (c *Composite) Resistors() int {
	return c.Left.Resistors() + c.Right.Resistors()
}

func (l *Leaf) Depth() int { return 1 }
func (c *Composite) Depth() int {
	ld := c.Left.Depth()
	rd := c.Right.Depth()
	if ld > rd {
		return 1 + ld
	}
	return 1 + rd
}
