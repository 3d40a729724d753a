// Package analysis inspects recorded runs.
//
//   - [Series]: one field of one body across frames
//   - [PowerSpectrum] and [DominantPeriod]: bounce frequency via FFT
//   - [Rebounds]: samples where a falling body turns upward
//   - [GeneratePhasePortrait]: two fields plotted against each other
//
// A body bouncing on the floor shows up as a peak in the height spectrum:
//
//	_, ys, _ := analysis.Series(frames, 1, "y")
//	period, _ := analysis.DominantPeriod(ys)
package analysis
