package domain

// MemberPosition is a department-scoped position, distinct from project-wide roles.
type MemberPosition string

const (
	PositionHOD         MemberPosition = "HOD"
	PositionCoordinator MemberPosition = "COORDINATOR"
	PositionCrew        MemberPosition = "CREW"
	PositionNone        MemberPosition = "NONE"
)

// ProjectMember is one entry of a project's roster. Approver resolution works on
// a snapshot of these taken at submission time; later roster changes never
// retroactively alter who may act on an in-flight document.
type ProjectMember struct {
	UserID     string         `json:"userID"`
	UserName   string         `json:"userName"`
	ProjectID  string         `json:"projectID"`
	Role       string         `json:"role"` // project-wide role name (e.g. "PM", "EP"); empty if none
	Department string         `json:"department"`
	Position   MemberPosition `json:"position"`
}
