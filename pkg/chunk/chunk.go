package chunk

// Chunk is an ordered collection of column vectors sharing one logical row
// count: the batch unit groups/payload/out_groups/out_result are all built
// from.
type Chunk struct {
	Cols    []*Vector
	count   int
	maxSize int
}

// NewChunk wraps cols into a Chunk whose capacity (maximum_size in §4.3) is
// maxSize.
func NewChunk(cols []*Vector, maxSize int) *Chunk {
	return &Chunk{Cols: cols, maxSize: maxSize}
}

func (c *Chunk) Count() int      { return c.count }
func (c *Chunk) SetCount(n int)  { c.count = n }
func (c *Chunk) MaxSize() int    { return c.maxSize }
func (c *Chunk) ColumnCount() int { return len(c.Cols) }
