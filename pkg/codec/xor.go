/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: xor.go
Description: Byte-wise XOR of two buffers and of a buffer against a single key byte.
*/

package codec

// XOR combines a and b byte by byte. The result has min(len(a), len(b)) bytes;
// the surplus of the longer buffer is dropped. Callers that need equal lengths
// must compare them first.
func XOR(a, b []byte) []byte {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	out := make([]byte, n)
	for i := 0; i < n; i++ {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// XORByte XORs every byte of buf with key
func XORByte(buf []byte, key byte) []byte {
	out := make([]byte, len(buf))
	for i, b := range buf {
		out[i] = b ^ key
	}
	return out
}
