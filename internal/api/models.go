package api

// WaveformInfo summarizes one available waveform.
type WaveformInfo struct {
	Name      string  `json:"name" doc:"Waveform name"`
	Kind      string  `json:"kind,omitempty" doc:"Built-in kind, empty for expression waveforms"`
	Term      string  `json:"term,omitempty" doc:"Coefficient formula in n for expression waveforms"`
	Builtin   bool    `json:"builtin" doc:"True for built-in kinds, false for preset-file definitions"`
	Period    float64 `json:"period" doc:"Fundamental period"`
	Harmonics int     `json:"harmonics" doc:"Default truncation order"`
	Taper     string  `json:"taper,omitempty" doc:"Default taper, empty for none"`
}

// ListWaveformsResponse lists available waveforms.
type ListWaveformsResponse struct {
	Body struct {
		Waveforms []WaveformInfo `json:"waveforms" doc:"Available waveforms, preset files first"`
	}
}

// GetCoefficientsRequest asks for the leading coefficients of a waveform.
type GetCoefficientsRequest struct {
	Name string `path:"name" doc:"Waveform name"`
	N    int    `query:"n" default:"10" minimum:"0" doc:"Number of harmonics to return"`
}

// CoefficientRow is one harmonic in both coefficient forms: trigonometric
// amplitudes a, b and the complex coefficient c = (a - i·b)/2.
type CoefficientRow struct {
	N         int     `json:"n" doc:"Harmonic index"`
	A         float64 `json:"a" doc:"Cosine amplitude aₙ"`
	B         float64 `json:"b" doc:"Sine amplitude bₙ"`
	Re        float64 `json:"c_re" doc:"Real part of cₙ"`
	Im        float64 `json:"c_im" doc:"Imaginary part of cₙ"`
	Magnitude float64 `json:"magnitude" doc:"|cₙ|"`
}

// GetCoefficientsResponse carries the coefficient table.
type GetCoefficientsResponse struct {
	Body struct {
		Name         string           `json:"name" doc:"Waveform name"`
		DC           float64          `json:"dc" doc:"Constant term c₀"`
		Taper        string           `json:"taper,omitempty" doc:"Taper applied to the amplitudes"`
		Coefficients []CoefficientRow `json:"coefficients" doc:"Harmonics 1..n"`
	}
}

// RenderSpec describes a render job. Either Waveform (a built-in kind or
// preset name) or Term (a coefficient formula in n) selects the function;
// unset view fields fall back to the waveform's defaults.
type RenderSpec struct {
	Waveform  string    `json:"waveform,omitempty" doc:"Waveform name (built-in kind or preset definition)"`
	Term      string    `json:"term,omitempty" doc:"Coefficient formula in n, alternative to waveform"`
	DC        string    `json:"dc,omitempty" doc:"Constant-term formula for expression renders"`
	Amplitude float64   `json:"amplitude,omitempty" doc:"Amplitude scale for expression renders, default 1"`
	Period    float64   `json:"period,omitempty" minimum:"0" doc:"Fundamental period, default 2π"`
	Interval  []float64 `json:"interval,omitempty" minItems:"2" maxItems:"2" doc:"Evaluation interval [start, end]"`
	Harmonics int       `json:"harmonics,omitempty" minimum:"0" doc:"Truncation order for single-panel renders"`
	Ladder    []int     `json:"ladder,omitempty" doc:"Harmonic counts, one panel each; empty renders a single panel"`
	Samples   int       `json:"samples,omitempty" minimum:"0" doc:"Grid point count, default 1000"`
	Taper     string    `json:"taper,omitempty" doc:"Taper name, e.g. lanczos or kaiser:8"`
	Width     int       `json:"width,omitempty" minimum:"0" doc:"Canvas width in pixels"`
	Height    int       `json:"height,omitempty" minimum:"0" doc:"Canvas height in pixels"`
	Format    string    `json:"format,omitempty" doc:"Image encoding, png or svg"`
	Reference bool      `json:"reference,omitempty" doc:"Draw the exact waveform dashed behind the approximation"`
}

// CreateRenderRequest carries a render job description.
type CreateRenderRequest struct {
	Body RenderSpec
}

// CreateRenderResponse acknowledges a queued render job.
type CreateRenderResponse struct {
	Status int
	Body   struct {
		ID     string `json:"id" doc:"Render job identifier"`
		Status string `json:"status" doc:"Job status at creation, always pending"`
	}
}

// GetRenderRequest polls a render job.
type GetRenderRequest struct {
	ID string `path:"id" doc:"Render job identifier"`
}

// GetRenderResponse reports render job state.
type GetRenderResponse struct {
	Body struct {
		ID       string  `json:"id" doc:"Render job identifier"`
		Status   string  `json:"status" enum:"pending,processing,completed,failed" doc:"Job status"`
		Progress int     `json:"progress" minimum:"0" maximum:"100" doc:"Progress percentage"`
		Error    string  `json:"error,omitempty" doc:"Failure reason for failed jobs"`
		ImageURL *string `json:"image_url,omitempty" doc:"Image location once completed"`
	}
}

// GetRenderImageRequest fetches the finished image.
type GetRenderImageRequest struct {
	ID string `path:"id" doc:"Render job identifier"`
}

// GetRenderImageResponse is the raw encoded image.
type GetRenderImageResponse struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}
