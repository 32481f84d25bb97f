package rand

import (
	"fmt"
)

const (
	MaxDim    = uint32(6)
	MaxBit    = uint32(30)
	maxSeqNum = 1 << MaxBit
	fac       = 1.0 / maxSeqNum
)

var (
	initMDeg = [MaxDim]uint32{1, 2, 3, 3, 4, 4}
	initIp   = [MaxDim]uint32{0, 1, 1, 2, 1, 4}
	initIv   = [MaxBit * MaxDim]uint32{
		1, 1, 1, 1, 1, 1, 3, 1, 3, 3, 1, 1, 5, 7, 7, 3, 3, 5, 15, 11, 5, 15, 13, 9,
	}
)

// SobolSequence generates points of a Sobol sequence in up to MaxDim
// dimensions. The first 2^k - 1 points fill every one of the 2^k equal bins
// along each axis except the first. See Press et al. 2007.
type SobolSequence struct {
	seqNum       uint32
	ix, mdeg, ip [MaxDim]uint32
	iv           [MaxBit * MaxDim]uint32
}

// NewSobolSequence returns a sequence starting from its first point.
func NewSobolSequence() *SobolSequence {
	seq := &SobolSequence{iv: initIv, ip: initIp, mdeg: initMDeg}

	for k := uint32(0); k < MaxDim; k++ {
		for j := uint32(0); j < seq.mdeg[k]; j++ {
			seq.iv[MaxDim*j+k] <<= MaxBit - j - 1
		}

		deg := seq.mdeg[k]
		for j := deg; j < MaxBit; j++ {
			ipp := seq.ip[k]
			i := seq.iv[MaxDim*(j-deg)+k]
			i ^= i >> deg

			for l := deg - 1; l >= 1; l-- {
				if ipp&1 == 1 {
					i ^= seq.iv[MaxDim*(j-l)+k]
				}
				ipp >>= 1
			}

			seq.iv[MaxDim*j+k] = i
		}
	}

	return seq
}

// Next returns the next point of the sequence.
func (seq *SobolSequence) Next(dim int) ([]float64, error) {
	target := make([]float64, dim)
	err := seq.NextAt(target)
	return target, err
}

// NextAt is equivalent to Next, except the point is written to target.
func (seq *SobolSequence) NextAt(target []float64) error {
	dim := uint32(len(target))
	if dim > MaxDim {
		return fmt.Errorf("Target dim %d is larger than MaxDim %d.", dim, MaxDim)
	} else if seq.seqNum >= maxSeqNum-1 {
		return fmt.Errorf(
			"Exceeded maximum seq num of %d for MaxBit %d.", maxSeqNum, MaxBit,
		)
	}

	zeroIdx := uint32(0)
	for zeroIdx = 0; zeroIdx < MaxBit; zeroIdx++ {
		if seq.seqNum&(1<<zeroIdx) == 0 {
			break
		}
	}
	seq.seqNum++

	im := zeroIdx * MaxDim
	for k := uint32(0); k < MaxDim; k++ {
		seq.ix[k] ^= seq.iv[im+k]
		if k < dim {
			target[k] = float64(seq.ix[k]) * fac
		}
	}
	return nil
}
