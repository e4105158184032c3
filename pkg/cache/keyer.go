package cache

// Keyer derives cache keys.
type Keyer interface {
	// LayoutKey identifies a layout of the input with the given hash.
	LayoutKey(inputHash string, opts LayoutKeyOpts) string
	// ArtifactKey identifies a rendering of the layout with the given key.
	ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts lists every option that changes a layout.
type LayoutKeyOpts struct {
	LinesPerPage     int      `json:"lpp"`
	CharacterHeight  float64  `json:"h"`
	VerticalSpace    float64  `json:"v"`
	XSpacePages      float64  `json:"xs"`
	YSpacePages      float64  `json:"ys"`
	Rows             int      `json:"rows"`
	Cols             int      `json:"cols"`
	FillByRow        bool     `json:"by_row"`
	WrapWidth        int      `json:"wrap"`
	ChunkSize        int      `json:"chunk"`
	Shape            string   `json:"shape"`
	Measure          string   `json:"measure"`
	NormalizeUnicode bool     `json:"nfc"`
	Derive           []string `json:"derive,omitempty"`
	Carry            []string `json:"carry,omitempty"`
}

// ArtifactKeyOpts lists every option that changes a rendered artifact.
type ArtifactKeyOpts struct {
	Format   string  `json:"format"`
	Style    string  `json:"style"`
	ShowText bool    `json:"text"`
	Frames   bool    `json:"frames"`
	Fill     string  `json:"fill"`
	Scale    float64 `json:"scale"`
}

// DefaultKeyer hashes options into keys of the form "layout:<sha256>" and
// "artifact:<sha256>".
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) LayoutKey(inputHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", inputHash, opts)
}

func (DefaultKeyer) ArtifactKey(layoutKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutKey, opts)
}
