package utils

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPartitionMap(t *testing.T) {
	{ // Range splitting across thread buckets
		getHisto := func(K, Np int) (histo map[int]int) {
			pm := NewPartitionMap(Np, K)
			histo = make(map[int]int)
			for np := 0; np < pm.ParallelDegree; np++ {
				maxK := pm.GetBucketDimension(np)
				histo[maxK]++
			}
			return
		}
		getTotal := func(histo map[int]int) (total int) {
			for key, count := range histo {
				total += key * count
			}
			return
		}
		assert.Equal(t, map[int]int{0: 30, 1: 2}, getHisto(2, 32))
		assert.Equal(t, map[int]int{1: 32}, getHisto(32, 32))
		assert.Equal(t, map[int]int{8: 32}, getHisto(256, 32))
		assert.Equal(t, map[int]int{8: 1, 9: 31}, getHisto(287, 32))
		assert.Equal(t, 287, getTotal(getHisto(287, 32)))
		for n := 64; n < 10000; n++ {
			var (
				keys   [2]float64
				keyNum int
			)
			histo := getHisto(n, 32)
			for key := range histo {
				keys[keyNum] = float64(key)
				keyNum++
			}
			if keyNum == 2 {
				assert.Equal(t, 1., math.Abs(keys[0]-keys[1])) // Bucket sizes differ by at most 1
			}
			assert.Equal(t, n, getTotal(histo))
		}
	}
	{ // Bucket probe, locate the bucket holding a global index
		for maxIndex := 10; maxIndex < 1000; maxIndex++ {
			pm := NewPartitionMap(5, maxIndex)
			for k := 0; k < maxIndex; k++ {
				tryCount, bn, min, max := pm.getBucketWithTryCount(k)
				mmin, mmax := pm.GetBucketRange(bn)
				assert.True(t, k >= min && k < max && min == mmin && max == mmax && tryCount <= 1)
			}
		}
	}
}

func TestMailBox(t *testing.T) {
	{ // Post / Deliver / Receive round trip on a single goroutine
		mb := NewMailBox[int](3)
		mb.PostMessage(1, 0, 42)
		mb.PostMessage(1, 0, 43)
		mb.DeliverMyMessages(1)
		mb.ReceiveMyMessages(0)
		assert.Equal(t, []int{42, 43}, mb.ReceiveMsgQs[0].Cells())
		// Nothing was sent to thread 2
		mb.ReceiveMyMessages(2)
		assert.Equal(t, 0, len(mb.ReceiveMsgQs[2].Cells()))
		mb.ClearMyMessages(0)
		assert.Equal(t, 0, len(mb.ReceiveMsgQs[0].Cells()))
	}
	{ // Gather to thread 0 with a blocking wait for all senders
		var (
			NP = 8
			mb = NewMailBox[float64](NP)
			wg sync.WaitGroup
		)
		for n := 1; n < NP; n++ {
			wg.Add(1)
			go func(myThread int) {
				defer wg.Done()
				mb.PostMessage(myThread, 0, float64(myThread))
				mb.DeliverMyMessages(myThread)
			}(n)
		}
		mb.WaitReceiveMyMessages(0, NP-1)
		wg.Wait()
		var sum float64
		for _, val := range mb.ReceiveMsgQs[0].Cells() {
			sum += val
		}
		assert.Equal(t, float64(NP*(NP-1)/2), sum)
	}
}
