//go:build tmprofile

package fn

func recordValue() { Profile.ValueCalls.Add(1) }
func recordGrad()  { Profile.GradCalls.Add(1) }
