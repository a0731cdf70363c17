package production

import "github.com/bn4g2003/ThienPhuoc-sub000/internal/domain/shared"

// ProductionStep is a stage of the garment production line
type ProductionStep string

const (
	StepMaterialImport  ProductionStep = "MATERIAL_IMPORT"
	StepCutting         ProductionStep = "CUTTING"
	StepSewing          ProductionStep = "SEWING"
	StepFinishing       ProductionStep = "FINISHING"
	StepQC              ProductionStep = "QC"
	StepWarehouseImport ProductionStep = "WAREHOUSE_IMPORT"
)

// Steps lists every step in production order
var Steps = []ProductionStep{
	StepMaterialImport,
	StepCutting,
	StepSewing,
	StepFinishing,
	StepQC,
	StepWarehouseImport,
}

// stepTransitions is exhaustive: each step advances only to its successor.
// WAREHOUSE_IMPORT has no successor; the order completes through the finished goods receipt.
var stepTransitions = map[ProductionStep]ProductionStep{
	StepMaterialImport: StepCutting,
	StepCutting:        StepSewing,
	StepSewing:         StepFinishing,
	StepFinishing:      StepQC,
	StepQC:             StepWarehouseImport,
}

// ParseStep validates a step name
func ParseStep(s string) (ProductionStep, error) {
	step := ProductionStep(s)
	if step.Index() < 0 {
		return "", shared.NewValidationError("INVALID_STEP", "unknown production step %q", s)
	}
	return step, nil
}

// Index returns the position of the step, or -1 when unknown
func (s ProductionStep) Index() int {
	for i, step := range Steps {
		if step == s {
			return i
		}
	}
	return -1
}

// Next returns the successor step, if any
func (s ProductionStep) Next() (ProductionStep, bool) {
	next, ok := stepTransitions[s]
	return next, ok
}

// CanAdvanceTo checks the transition table
func (s ProductionStep) CanAdvanceTo(target ProductionStep) bool {
	next, ok := stepTransitions[s]
	return ok && next == target
}

// ProductionStatus is the overall state of a production order
type ProductionStatus string

const (
	ProductionStatusPending    ProductionStatus = "PENDING"
	ProductionStatusInProgress ProductionStatus = "IN_PROGRESS"
	ProductionStatusCompleted  ProductionStatus = "COMPLETED"
)
