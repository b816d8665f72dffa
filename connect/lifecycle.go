package connect

// Lifecycle is implemented by consumers that hold store subscriptions.
type Lifecycle interface {
	Mount()
	Unmount()
}

// MountAll mounts items in order.
func MountAll(items ...Lifecycle) {
	for _, item := range items {
		if item != nil {
			item.Mount()
		}
	}
}

// UnmountAll unmounts items in reverse order.
func UnmountAll(items ...Lifecycle) {
	for i := len(items) - 1; i >= 0; i-- {
		if items[i] != nil {
			items[i].Unmount()
		}
	}
}

var _ Lifecycle = (*Connected[struct{}, int])(nil)
