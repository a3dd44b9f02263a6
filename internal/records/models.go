package records

// Appointment is a visit sub-document on a patient record.
type Appointment struct {
	ID     string `json:"_id,omitempty"`
	Doctor string `json:"doctor"`
	Date   string `json:"date"`
	Notes  string `json:"notes,omitempty"`
	Status string `json:"status"` // scheduled, completed, cancelled, requested
}

// Prescription is a medication entry on a patient record.
type Prescription struct {
	ID     string `json:"_id,omitempty"`
	Name   string `json:"name"`
	Start  string `json:"start"`
	Stop   string `json:"stop,omitempty"`
	Status string `json:"status"` // active, completed, cancelled, pending
}

// CarePlan is a long-running treatment entry on a patient record.
type CarePlan struct {
	ID     string `json:"_id,omitempty"`
	Name   string `json:"name"`
	Start  string `json:"start"`
	Stop   string `json:"stop,omitempty"`
	Status string `json:"status"`
}

// Location carries the patient's geocoded position.
type Location struct {
	Coordinates [2]float64 `json:"coordinates"`
}

// Patient is the record-service view of a patient.
type Patient struct {
	ID            string         `json:"_id,omitempty"`
	Name          string         `json:"name"`
	Age           int            `json:"age"`
	Gender        string         `json:"gender,omitempty"`
	Town          string         `json:"town,omitempty"`
	Condition     string         `json:"condition,omitempty"`
	AgeGroup      string         `json:"age_group,omitempty"`
	Appointments  []Appointment  `json:"appointments,omitempty"`
	Prescriptions []Prescription `json:"prescriptions,omitempty"`
	CarePlans     []CarePlan     `json:"careplans,omitempty"`
	Location      *Location      `json:"location,omitempty"`
	CreatedAt     string         `json:"created_at,omitempty"`
	UpdatedAt     string         `json:"updated_at,omitempty"`
}
