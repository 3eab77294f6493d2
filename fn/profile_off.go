//go:build !tmprofile

package fn

func recordValue() {}
func recordGrad()  {}
