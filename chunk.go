package pathsimp

// Chunk is a contiguous run of commands of one subpath that is simplified as
// a unit.
type Chunk struct {
	// Subpath is the index of the subpath within its path.
	Subpath int
	// Index is the position of the chunk within its subpath.
	Index int
	Kind  PathElementKind
	// Start is the on-path point the first command begins at.
	Start Point
	// Commands is a view into the annotated subpath. It must not be
	// modified.
	Commands []AnnotatedCommand
	// Passthrough is set for chunks that are emitted unchanged without
	// trying to merge them: MoveTo, LineTo and ClosePath commands, and
	// single curves.
	Passthrough bool
}

// End returns the on-path point the last command ends at.
func (ch Chunk) End() Point {
	return ch.Commands[len(ch.Commands)-1].Info.End
}

// Len returns the number of commands in the chunk.
func (ch Chunk) Len() int {
	return len(ch.Commands)
}

// Elements returns copies of the chunk's original commands.
func (ch Chunk) Elements() []PathElement {
	out := make([]PathElement, len(ch.Commands))
	for i, c := range ch.Commands {
		out[i] = c.PathElement
	}
	return out
}

// Cubics returns the chunk's commands as cubic Béziers.
func (ch Chunk) Cubics() []CubicBez {
	out := make([]CubicBez, len(ch.Commands))
	for i, c := range ch.Commands {
		out[i] = c.Cubic()
	}
	return out
}

// Chunks partitions an annotated subpath into chunks.
//
// Runs of quadratics and runs of cubics are grouped. A run is split before
// a command of a different kind, before a command flagged as a corner or
// as a direction change, and after a command whose end point is extreme.
// An extreme command therefore closes its chunk rather than opening the
// next one, so every bounding-box vertex is a chunk end point and survives
// simplification exactly. All other commands become single-command
// passthrough chunks.
func Chunks(sp AnnotatedSubpath) []Chunk {
	return chunks(sp, 0)
}

func chunks(sp AnnotatedSubpath, subpath int) []Chunk {
	var out []Chunk
	start := -1
	flush := func(end int) {
		if start < 0 {
			return
		}
		cmds := sp.Commands[start:end:end]
		out = append(out, Chunk{
			Subpath:     subpath,
			Index:       len(out),
			Kind:        cmds[0].Kind,
			Start:       cmds[0].Info.Start,
			Commands:    cmds,
			Passthrough: len(cmds) == 1,
		})
		start = -1
	}

	for i, c := range sp.Commands {
		if !c.IsCurve() {
			flush(i)
			out = append(out, Chunk{
				Subpath:     subpath,
				Index:       len(out),
				Kind:        c.Kind,
				Start:       c.Info.Start,
				Commands:    sp.Commands[i : i+1 : i+1],
				Passthrough: true,
			})
			continue
		}
		if start >= 0 && (c.Kind != sp.Commands[start].Kind || c.Info.IsCorner || c.Info.HasDirectionChange) {
			flush(i)
		}
		if start < 0 {
			start = i
		}
		if c.Info.IsExtreme {
			flush(i + 1)
		}
	}
	flush(len(sp.Commands))
	return out
}
