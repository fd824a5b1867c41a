// Package fourier computes and renders truncated Fourier series of periodic
// functions in pure Go.
//
// A periodic function with fundamental period T is approximated by the
// partial sum
//
//	f(t) ≈ c₀ + Σ_{n=1..N} (cₙ·e^{inωt} + c₋ₙ·e^{-inωt}),  ω = 2π/T
//
// taking the real part. Coefficients come from built-in closed forms,
// arithmetic formulas in n, numerical analysis of sampled data, or any
// user-supplied [Provider].
//
// # Features
//
//   - Built-in waveforms with exact closed-form coefficients: square,
//     sawtooth, triangle, pulse train, rectified sine
//   - Coefficient formulas compiled at runtime ("-2*i/(pi*n)")
//   - Numerical coefficient extraction from sampled data or functions
//   - Ladder rendering: partial sums at many harmonic counts in one pass
//   - Spectral tapers (Lanczos, Fejér, Hann, Hamming, Kaiser) to damp the
//     Gibbs overshoot near discontinuities
//   - Direct SIMD-accelerated synthesis on arbitrary grids, with an inverse
//     FFT fast path on one-period grids at high harmonic counts
//   - Pure Go implementation with no CGO dependencies
//
// # Quick Start
//
// For simple one-shot synthesis of a built-in waveform:
//
//	samples, err := fourier.Sample(fourier.Square(1.0), 25)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For full control, configure a reusable synthesizer:
//
//	config := fourier.DefaultConfig()
//	config.Provider = fourier.Sawtooth(1.0)
//	config.Harmonics = 100
//	config.Taper = "lanczos"
//
//	s, err := fourier.New(&config)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	samples, err := s.Sample()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	plotWave(s.Points(), samples)
//
// # Coefficient Sources
//
// Closed forms for the built-in waveforms are exact; [Square], [Sawtooth],
// [Triangle], [Pulse] and [RectifiedSine] return providers directly.
//
// [FromExpression] compiles an arithmetic formula in the harmonic index n:
//
//	p, err := fourier.FromExpression("i*pow(-1, n)/(pi*n)")
//
// Formulas apply to n ≠ 0 only; use [WithDC] to set the constant term.
//
// [FromFunc] and [FromSamples] extract coefficients numerically from one
// period of a function or of uniformly sampled data:
//
//	p, err := fourier.FromFunc(func(t float64) float64 {
//	    return math.Exp(math.Sin(t))
//	}, 2*math.Pi, 50)
//
// # Ladder Rendering
//
// Watching the approximation sharpen as harmonics accumulate is the whole
// point of the tool. [Synthesizer.SampleLadder] renders snapshots at several
// harmonic counts in one accumulation pass:
//
//	waves, err := s.SampleLadder(fourier.DefaultLadder())
//	for n, wave := range waves {
//	    plotPanel(n, wave)
//	}
//
// # Tapers
//
// Truncating a Fourier series at N harmonics rings near discontinuities
// (the Gibbs phenomenon, ~9% overshoot regardless of N). Setting
// Config.Taper multiplies the amplitudes with a decaying window, trading
// transition sharpness for overshoot: "lanczos" is the classic σ-factor
// choice, "fejer" averages partial sums, "kaiser:8.6" gives explicit
// control over the tradeoff.
//
// # Synthesis Paths
//
// The direct engine evaluates the trigonometric sum per grid point with
// SIMD dot products and works on any grid; Config.Parallel spreads large
// grids across goroutines. When the grid spans exactly one period and the
// harmonic count is high, synthesis goes through the inverse real FFT
// instead. Both paths produce identical waveforms within floating-point
// tolerance; [Synthesizer.Info] reports the selected path.
//
// # Thread Safety
//
// [Synthesizer.Evaluate], [Synthesizer.Coefficients] and [Synthesizer.Points]
// are safe for concurrent use. Calls to [Synthesizer.Sample] and
// [Synthesizer.SampleLadder] on the same instance share scratch buffers and
// should be serialized; independent instances are fully concurrent.
package fourier
