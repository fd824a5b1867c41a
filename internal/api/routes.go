package api

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
)

// Register wires all waveform and render operations onto the API.
func Register(api huma.API, h *Handler) {
	huma.Register(api, huma.Operation{
		OperationID: "listWaveforms",
		Method:      http.MethodGet,
		Path:        "/api/waveforms",
		Summary:     "List waveforms",
		Description: "Lists preset-file waveforms and the built-in kinds",
		Tags:        []string{"Waveforms"},
	}, h.ListWaveforms)

	huma.Register(api, huma.Operation{
		OperationID: "getWaveformCoefficients",
		Method:      http.MethodGet,
		Path:        "/api/waveforms/{name}/coefficients",
		Summary:     "Get waveform coefficients",
		Description: "Returns the leading Fourier coefficients in trigonometric and complex form",
		Tags:        []string{"Waveforms"},
	}, h.GetCoefficients)

	huma.Register(api, huma.Operation{
		OperationID: "createRender",
		Method:      http.MethodPost,
		Path:        "/api/renders",
		Summary:     "Create a render job",
		Description: "Queues an asynchronous waveform render and returns its id for polling",
		Tags:        []string{"Renders"},
	}, h.CreateRender)

	huma.Register(api, huma.Operation{
		OperationID: "getRender",
		Method:      http.MethodGet,
		Path:        "/api/renders/{id}",
		Summary:     "Get render job status",
		Description: "Returns the status and progress of a render job",
		Tags:        []string{"Renders"},
	}, h.GetRender)

	huma.Register(api, huma.Operation{
		OperationID: "getRenderImage",
		Method:      http.MethodGet,
		Path:        "/api/renders/{id}/image",
		Summary:     "Get rendered image",
		Description: "Returns the encoded image of a completed render job",
		Tags:        []string{"Renders"},
	}, h.GetRenderImage)
}
