package pool

// maxPooledBytes caps the capacity of buffers kept for reuse so that one
// very wide row does not pin a large allocation.
const maxPooledBytes = 64 * 1024

// BytesPool holds scratch byte slices, returned empty.
var BytesPool = New(
	func() *[]byte {
		b := make([]byte, 0, 512)
		return &b
	},
	func(b *[]byte) {
		if cap(*b) > maxPooledBytes {
			*b = make([]byte, 0, 512)
			return
		}
		*b = (*b)[:0]
	},
)

// GetBytes returns an empty scratch buffer from BytesPool.
func GetBytes() *[]byte {
	return BytesPool.Get()
}

// PutBytes returns b to BytesPool. b must not be used afterwards.
func PutBytes(b *[]byte) {
	BytesPool.Put(b)
}
