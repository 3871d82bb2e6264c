package colormap

// table is a palette defined by evenly spaced control points; lookups
// interpolate linearly between neighbouring points.
type table []RGB

func (tb table) at(t float64) RGB {
	if len(tb) == 1 {
		return tb[0]
	}
	pos := t * float64(len(tb)-1)
	i := int(pos)
	if i >= len(tb)-1 {
		return tb[len(tb)-1]
	}
	return lerpRGB(tb[i], tb[i+1], pos-float64(i))
}

// Diverging blue-to-red through a light midpoint.
var blueredTable = table{
	{0, 0, 255},
	{77, 106, 255},
	{136, 168, 255},
	{189, 213, 252},
	{233, 231, 229},
	{252, 198, 171},
	{255, 152, 115},
	{250, 92, 61},
	{255, 0, 0},
}

// Cool ocean-to-shore gradient.
var breezeTable = table{
	{0, 32, 77},
	{0, 66, 122},
	{0, 101, 158},
	{12, 133, 173},
	{52, 168, 189},
	{87, 203, 204},
	{139, 227, 216},
	{188, 244, 229},
	{229, 255, 239},
}

// Muted dusk tones.
var mistTable = table{
	{21, 22, 43},
	{42, 50, 77},
	{66, 84, 114},
	{98, 121, 143},
	{137, 160, 165},
	{176, 196, 184},
	{209, 222, 203},
	{235, 240, 226},
}
