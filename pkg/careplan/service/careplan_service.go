package service

type CareplanService interface {
	// EnsureAnnualPlan generates the structural annual task set for one
	// plant. It is a no-op when the plant already has tasks. Returns the
	// number of tasks created.
	EnsureAnnualPlan(userID, plantID string, lat, lon *float64, language string) (int, error)

	// BootstrapAll runs EnsureAnnualPlan over the whole garden. A failed
	// plant is logged and skipped; it is retried on the next launch since
	// the zero-tasks precondition still holds.
	BootstrapAll(userID string, lat, lon *float64, language string) error

	// CarePlanSheet returns the detailed markdown care sheet for a plant,
	// regenerating it when the cached copy is older than the cache window.
	CarePlanSheet(userID, plantID, language string) (string, error)
}
