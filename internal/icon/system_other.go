//go:build !windows

package icon

// NewSystemSource returns the icon source for the running platform
func NewSystemSource() Source {
	return PESource{}
}
