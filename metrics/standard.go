package metrics

// Pre-defined metrics for this module. All metrics live in DefaultRegistry
// so they are globally accessible without passing a registry around.

// OperationCollector records per-parameter-set latency observations that
// DefaultRegistry's aggregate Histogram vars can't distinguish (a single
// mlkem.keygen_us Histogram mixes ML-KEM-512 and ML-KEM-1024 timings into
// one mean/min/max). crypto/pqc records into it under a name of the form
// "<metric>.<paramSet>" so HistogramPercentile can be queried per set.
var OperationCollector = NewMetricsCollector(CollectorConfig{
	EnableHistograms: true,
	MaxMetrics:       50000,
})

var (
	// ---- Key generation ----

	// KeyGenTotal counts completed KeyGen calls across all parameter sets.
	KeyGenTotal = DefaultRegistry.Counter("mlkem.keygen_total")
	// KeyGenDurationMicros records KeyGen wall time in microseconds.
	KeyGenDurationMicros = DefaultRegistry.Histogram("mlkem.keygen_us")

	// ---- Encapsulation ----

	// EncapsTotal counts completed Encaps calls.
	EncapsTotal = DefaultRegistry.Counter("mlkem.encaps_total")
	// EncapsRejected counts Encaps calls that failed ek validation.
	EncapsRejected = DefaultRegistry.Counter("mlkem.encaps_rejected_total")
	// EncapsDurationMicros records Encaps wall time in microseconds.
	EncapsDurationMicros = DefaultRegistry.Histogram("mlkem.encaps_us")

	// ---- Decapsulation ----

	// DecapsTotal counts completed Decaps calls.
	DecapsTotal = DefaultRegistry.Counter("mlkem.decaps_total")
	// DecapsRejected counts Decaps calls that failed dk/ciphertext
	// validation (distinct from implicit rejection, which is not an error).
	DecapsRejected = DefaultRegistry.Counter("mlkem.decaps_rejected_total")
	// DecapsImplicitRejections counts Decaps calls whose re-encryption
	// check failed and fell back to the pseudorandom shared secret.
	DecapsImplicitRejections = DefaultRegistry.Counter("mlkem.decaps_implicit_rejections_total")
	// DecapsDurationMicros records Decaps wall time in microseconds.
	DecapsDurationMicros = DefaultRegistry.Histogram("mlkem.decaps_us")

	// ---- Sampling ----

	// MatrixCellsSampled counts SampleNTT calls (one per (i,j) matrix cell).
	MatrixCellsSampled = DefaultRegistry.Counter("mlkem.matrix_cells_sampled_total")
	// CBDPolysSampled counts SamplePolyCBD calls.
	CBDPolysSampled = DefaultRegistry.Counter("mlkem.cbd_polys_sampled_total")
)
