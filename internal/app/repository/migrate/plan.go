package migrate

// SpeedTolerance is the accepted shortfall between source and target speed
// counts during verification. Some source rows are legitimately excluded.
const SpeedTolerance = 0.01

// Counts is the pre-flight snapshot of one store.
type Counts struct {
	Markers             int
	MarkersWithSpectrum int
	MarkersWithSpeed    int
	Spectra             int
}

// Plan is what a run intends to do, computed from both snapshots before any
// write happens. Dry-run mode stops here.
type Plan struct {
	Source Counts
	Target Counts

	SpectraToInsert int
	FlagsToUpdate   int
	SpeedsToUpdate  int
}

// NothingToDo reports whether the target already holds everything the
// source has.
func (p Plan) NothingToDo() bool {
	return p.SpectraToInsert <= 0 && p.FlagsToUpdate <= 0 && p.SpeedsToUpdate <= 0
}

// SourceEmpty reports whether the source has no spectral or speed data at
// all, which ends the run before connecting to the target.
func (p Plan) SourceEmpty() bool {
	return p.Source.Spectra == 0 && p.Source.MarkersWithSpeed == 0
}

func computePlan(source, target Counts) Plan {
	return Plan{
		Source:          source,
		Target:          target,
		SpectraToInsert: max(0, source.Spectra-target.Spectra),
		FlagsToUpdate:   max(0, source.MarkersWithSpectrum-target.MarkersWithSpectrum),
		SpeedsToUpdate:  max(0, source.MarkersWithSpeed-target.MarkersWithSpeed),
	}
}

// VerifyResult is the post-run comparison against the pre-run source counts.
type VerifyResult struct {
	Target Counts

	SpectraOK bool
	SpeedOK   bool
}

// OK reports whether the run passed verification. Shortfalls are warnings,
// not failures; the caller keeps exit code 0 either way.
func (v VerifyResult) OK() bool {
	return v.SpectraOK && v.SpeedOK
}

// verifyCounts applies the success rules: target spectra must reach the
// source count, speed counts may fall short by SpeedTolerance.
func verifyCounts(source, target Counts) VerifyResult {
	return VerifyResult{
		Target:    target,
		SpectraOK: target.Spectra >= source.Spectra,
		SpeedOK:   float64(target.MarkersWithSpeed) >= float64(source.MarkersWithSpeed)*(1-SpeedTolerance),
	}
}
