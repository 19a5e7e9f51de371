package membench

// Element is the numeric type of the benchmark arrays.
type Element interface {
	float32 | float64
}

// KernelID indexes the fixed kernel sequence.
type KernelID int

const (
	Copy KernelID = iota
	Scale
	Add
	Triad

	// NumKernels is the length of the fixed kernel sequence.
	NumKernels
)

// String returns the kernel label.
func (k KernelID) String() string {
	switch k {
	case Copy:
		return "Copy"
	case Scale:
		return "Scale"
	case Add:
		return "Add"
	case Triad:
		return "Triad"
	}
	return "Unknown"
}

// KernelDesc describes one streaming kernel: its label, its memory traffic
// per element in words, its arithmetic per element, and the elementwise
// transform over an index range. The four kernels form a fixed chain:
// within one trial, Copy feeds Scale feeds Add feeds Triad, and that order
// is what makes the analytic verification recurrence valid.
type KernelDesc[T Element] struct {
	ID    KernelID
	Label string

	// Words is the number of array elements moved per index: one read
	// plus one write for Copy and Scale, two reads plus one write for
	// Add and Triad.
	Words int

	// FLOPs is the floating point operations per element, used only for
	// reporting.
	FLOPs int

	// Run applies the transform over indices [start, end). Each index
	// writes exactly one slot none of the other indices touch, so ranges
	// can execute concurrently without locks.
	Run func(a, b, c []T, scalar T, start, end int)
}

// BytesPerTrial returns the memory traffic of one full trial of this
// kernel over n elements.
func (k KernelDesc[T]) BytesPerTrial(n int) uint64 {
	var zero T
	return uint64(k.Words) * uint64(n) * uint64(elemSize(zero))
}

func elemSize[T Element](T) int {
	var v T
	switch any(v).(type) {
	case float32:
		return 4
	default:
		return 8
	}
}

// Kernels returns the fixed kernel sequence in execution order.
func Kernels[T Element]() [NumKernels]KernelDesc[T] {
	return [NumKernels]KernelDesc[T]{
		{
			ID:    Copy,
			Label: "Copy",
			Words: 2,
			FLOPs: 0,
			Run: func(a, b, c []T, scalar T, start, end int) {
				for i := start; i < end; i++ {
					c[i] = a[i]
				}
			},
		},
		{
			ID:    Scale,
			Label: "Scale",
			Words: 2,
			FLOPs: 1,
			Run: func(a, b, c []T, scalar T, start, end int) {
				for i := start; i < end; i++ {
					b[i] = scalar * c[i]
				}
			},
		},
		{
			ID:    Add,
			Label: "Add",
			Words: 3,
			FLOPs: 1,
			Run: func(a, b, c []T, scalar T, start, end int) {
				for i := start; i < end; i++ {
					c[i] = a[i] + b[i]
				}
			},
		},
		{
			ID:    Triad,
			Label: "Triad",
			Words: 3,
			FLOPs: 2,
			Run: func(a, b, c []T, scalar T, start, end int) {
				for i := start; i < end; i++ {
					a[i] = b[i] + scalar*c[i]
				}
			},
		},
	}
}
