package models

// Notice is a one-off alert shown to the user, outside of AcquisitionState.
type Notice struct {
	Kind    string `json:"kind"`
	Title   string `json:"title"`
	Message string `json:"message"`
}
