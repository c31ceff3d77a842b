package model

type Mode string

const (
	ModeTelecom Mode = "telecom"
	ModeFuel    Mode = "fuel"
)

func (m Mode) Valid() bool {
	return m == ModeTelecom || m == ModeFuel
}
