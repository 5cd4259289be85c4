package variation

// Templates holds the phrasing variants for one kind of generated page.
type Templates struct {
	Titles       []string
	Descriptions []string
	Headings     []string
	Intros       []string
	Benefits     [][]string
}

// Rendered is the interpolated output for a single page.
type Rendered struct {
	Title       string
	Description string
	Heading     string
	Intro       string
	Benefits    []string
}

// Render picks a variant per field for key and interpolates vars into it.
// Each field is salted separately so fields vary independently while staying
// deterministic for the key. Empty variant lists render as empty values.
func Render(t Templates, key string, vars *Variables) Rendered {
	r := Rendered{
		Title:       pick(t.Titles, key+"#title", vars),
		Description: pick(t.Descriptions, key+"#description", vars),
		Heading:     pick(t.Headings, key+"#heading", vars),
		Intro:       pick(t.Intros, key+"#intro", vars),
	}
	if len(t.Benefits) > 0 {
		set := Select(t.Benefits, key+"#benefits")
		r.Benefits = make([]string, 0, len(set))
		for _, b := range set {
			r.Benefits = append(r.Benefits, Interpolate(b, vars))
		}
	}
	return r
}

func pick(variants []string, key string, vars *Variables) string {
	if len(variants) == 0 {
		return ""
	}
	return Interpolate(Select(variants, key), vars)
}
