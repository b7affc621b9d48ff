package model

type ParticipantID string

const EmptyParticipantID ParticipantID = ""

type Role string

const (
	RoleHost  Role = "host"
	RoleGuest Role = "guest"
)

type Origin string

const (
	OriginLocal  Origin = "local"
	OriginRemote Origin = "remote"
)

type Participant struct {
	ID     ParticipantID
	Name   string
	Role   Role
	Origin Origin
}
