package world

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Load reads a text level file per spec.md §6's line-oriented format:
//
//	v <id> <x> <y>
//	s <id> <floor> <ceil> <tex_floor> <tex_ceil> <brightness> <n>
//	    <v0_0> <v1_0> <nbr_0|'x'> <tlow_0> <tmid_0> <thigh_0> ...
//	p <x> <y> <sector_id>
//
// The n wall groups of a sector continue on the same line as its `s` tag;
// every line is parsed on its own, so a wall group on a line of its own is
// rejected as an unknown tag.
//
// `id` fields on `v` and `s` lines are ignored; order of appearance
// defines the id, matching original_source/src/world.c's loader. Unlike
// the original (which accepts malformed rows silently), this loader fails
// the whole load on any unparseable row, resolving spec.md §9's Open
// Question toward the spec's own stated preference.
func Load(r io.Reader) (*World, error) {
	w := New()

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		tag := fields[0]
		switch tag {
		case "v":
			if err := parseVertexLine(w, fields); err != nil {
				return nil, fmt.Errorf("level line %d: %w", lineNo, err)
			}
		case "s":
			if err := parseSectorLine(w, fields); err != nil {
				return nil, fmt.Errorf("level line %d: %w", lineNo, err)
			}
		case "p":
			if err := parsePlayerLine(w, fields); err != nil {
				return nil, fmt.Errorf("level line %d: %w", lineNo, err)
			}
		default:
			return nil, fmt.Errorf("level line %d: unknown tag %q", lineNo, tag)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading level: %w", err)
	}

	if len(w.Sectors) == 0 {
		return nil, fmt.Errorf("level has no sectors")
	}
	if int(w.Player.Sector) >= len(w.Sectors) {
		w.Player.Sector = 0
	}
	w.Player.Pos[2] = w.Sectors[w.Player.Sector].Floor

	if err := w.Validate(); err != nil {
		return nil, err
	}
	return w, nil
}

func parseVertexLine(w *World, fields []string) error {
	// v <id> <x> <y>: the id is ignored, order of appearance defines it.
	if len(fields) != 4 {
		return fmt.Errorf("vertex line wants 4 fields, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Errorf("vertex x: %w", err)
	}
	y, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return fmt.Errorf("vertex y: %w", err)
	}
	w.Vertices = append(w.Vertices, Vertex{X: x, Y: y})
	return nil
}

func parseSectorLine(w *World, fields []string) error {
	// s <id> <floor> <ceil> <tex_floor> <tex_ceil> <brightness> <n> then
	// n wall triples of (v0 v1 nbr|'x' tlow tmid thigh).
	if len(fields) < 8 {
		return fmt.Errorf("sector line wants at least 8 fields, got %d", len(fields))
	}
	floor, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Errorf("sector floor: %w", err)
	}
	ceil, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return fmt.Errorf("sector ceil: %w", err)
	}
	texFloor, err := parseTextureID(fields[4])
	if err != nil {
		return fmt.Errorf("sector floor texture: %w", err)
	}
	texCeil, err := parseTextureID(fields[5])
	if err != nil {
		return fmt.Errorf("sector ceil texture: %w", err)
	}
	brightness, err := strconv.ParseUint(fields[6], 10, 8)
	if err != nil {
		return fmt.Errorf("sector brightness: %w", err)
	}
	n, err := strconv.Atoi(fields[7])
	if err != nil {
		return fmt.Errorf("sector wall count: %w", err)
	}

	const fieldsPerWall = 6
	want := 8 + n*fieldsPerWall
	if len(fields) != want {
		return fmt.Errorf("sector declares %d walls, wants %d fields, got %d", n, want, len(fields))
	}

	walls := make([]Wall, n)
	for i := 0; i < n; i++ {
		base := 8 + i*fieldsPerWall
		v0, err := strconv.Atoi(fields[base])
		if err != nil {
			return fmt.Errorf("wall %d v0: %w", i, err)
		}
		v1, err := strconv.Atoi(fields[base+1])
		if err != nil {
			return fmt.Errorf("wall %d v1: %w", i, err)
		}
		var nbr SectorID
		if fields[base+2] == "x" {
			nbr = NoNeighbor
		} else {
			nv, err := strconv.Atoi(fields[base+2])
			if err != nil {
				return fmt.Errorf("wall %d neighbor: %w", i, err)
			}
			nbr = SectorID(nv)
		}
		texLow, err := parseTextureID(fields[base+3])
		if err != nil {
			return fmt.Errorf("wall %d low texture: %w", i, err)
		}
		texMid, err := parseTextureID(fields[base+4])
		if err != nil {
			return fmt.Errorf("wall %d mid texture: %w", i, err)
		}
		texHigh, err := parseTextureID(fields[base+5])
		if err != nil {
			return fmt.Errorf("wall %d high texture: %w", i, err)
		}
		walls[i] = Wall{
			V0: VertexID(v0), V1: VertexID(v1),
			Neighbor: nbr,
			TexLow:   texLow, TexMid: texMid, TexHigh: texHigh,
		}
	}

	w.Sectors = append(w.Sectors, Sector{
		Floor: floor, Ceil: ceil,
		Brightness: uint8(brightness),
		TexFloor:   texFloor, TexCeil: texCeil,
		Walls: walls,
	})
	return nil
}

func parsePlayerLine(w *World, fields []string) error {
	if len(fields) != 4 {
		return fmt.Errorf("player line wants 4 fields, got %d", len(fields))
	}
	x, err := strconv.ParseFloat(fields[1], 64)
	if err != nil {
		return fmt.Errorf("player x: %w", err)
	}
	y, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return fmt.Errorf("player y: %w", err)
	}
	sector, err := strconv.Atoi(fields[3])
	if err != nil {
		return fmt.Errorf("player sector: %w", err)
	}
	w.Player.Pos[0] = x
	w.Player.Pos[1] = y
	w.Player.Sector = SectorID(sector)
	return nil
}

// parseTextureID parses a texture id field. Per spec.md §6, ids that are
// out of the texture-table range or negative become "no texture"; here we
// accept any integer and let World.Texture's bounds check at render time
// decide whether it resolves, matching the spec's "band is skipped at
// render time" rule rather than rejecting out-of-range ids at load time.
func parseTextureID(field string) (TextureID, error) {
	v, err := strconv.Atoi(field)
	if err != nil {
		return 0, err
	}
	return TextureID(v), nil
}
