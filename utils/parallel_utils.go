package utils

import "fmt"

// DynBuffer is an append only message carrier handed between workers by the
// MailBox and reset by the receiver after a drain
type DynBuffer[T any] struct {
	cells []T
}

func NewDynBuffer[T any](sizeEstimate int) (db *DynBuffer[T]) {
	db = &DynBuffer[T]{
		cells: make([]T, 0, sizeEstimate),
	}
	return
}

func (db *DynBuffer[T]) Add(cell T) {
	db.cells = append(db.cells, cell)
}

func (db *DynBuffer[T]) Cells() []T {
	return db.cells
}

func (db *DynBuffer[T]) Reset() {
	db.cells = db.cells[:0]
}

/*
MailBox passes batched messages between a fixed set of worker goroutines.
Each worker accumulates outgoing messages into per target buffers, delivers
them in one channel send per target, and drains its own channel into a
receive queue. Receivers that know their sender count can block until the
full gather arrives.
*/
type MailBox[T any] struct {
	NP           int
	MessageChans []chan *DynBuffer[T]
	PostMsgQs    []map[int]*DynBuffer[T]
	ReceiveMsgQs []*DynBuffer[T]
	MailFlag     []bool
}

func NewMailBox[T any](NP int) *MailBox[T] {
	mb := &MailBox[T]{
		NP:           NP,
		MessageChans: make([]chan *DynBuffer[T], NP),
		PostMsgQs:    make([]map[int]*DynBuffer[T], NP),
		ReceiveMsgQs: make([]*DynBuffer[T], NP),
		MailFlag:     make([]bool, NP),
	}
	for n := 0; n < NP; n++ {
		// All to all is the worst case delivery fan in
		mb.MessageChans[n] = make(chan *DynBuffer[T], NP)
		mb.PostMsgQs[n] = make(map[int]*DynBuffer[T])
		mb.ReceiveMsgQs[n] = NewDynBuffer[T](0)
	}
	return mb
}

// PostMessage queues msg from myThread for targetThread, delivered on the
// next DeliverMyMessages call
func (mb *MailBox[T]) PostMessage(myThread, targetThread int, msg T) {
	q := mb.PostMsgQs[myThread]
	tgt, exists := q[targetThread]
	if !exists {
		tgt = NewDynBuffer[T](0)
		q[targetThread] = tgt
	}
	tgt.Add(msg)
	mb.MailFlag[myThread] = true
}

// DeliverMyMessages sends every queued buffer of myThread to its target
func (mb *MailBox[T]) DeliverMyMessages(myThread int) {
	if !mb.MailFlag[myThread] {
		return
	}
	for targetThread, msgBuffer := range mb.PostMsgQs[myThread] {
		if targetThread < 0 || targetThread >= mb.NP {
			panic(fmt.Sprintf("target thread %d out of bounds", targetThread))
		}
		mb.MessageChans[targetThread] <- msgBuffer
	}
	mb.MailFlag[myThread] = false
}

// drain empties one delivered buffer into the receive queue and hands the
// storage back to the sender
func (mb *MailBox[T]) drain(myThread int, msgBuffer *DynBuffer[T]) {
	for _, msg := range msgBuffer.Cells() {
		mb.ReceiveMsgQs[myThread].Add(msg)
	}
	msgBuffer.Reset()
}

// ReceiveMyMessages drains whatever has been delivered without blocking
func (mb *MailBox[T]) ReceiveMyMessages(myThread int) {
	for {
		select {
		case msgBuffer := <-mb.MessageChans[myThread]:
			mb.drain(myThread, msgBuffer)
		default:
			return
		}
	}
}

// WaitReceiveMyMessages blocks until at least msgCount messages have arrived,
// then drains any remaining queued buffers. Used for gather patterns where the
// receiver knows how many senders to expect.
func (mb *MailBox[T]) WaitReceiveMyMessages(myThread, msgCount int) {
	for len(mb.ReceiveMsgQs[myThread].Cells()) < msgCount {
		mb.drain(myThread, <-mb.MessageChans[myThread])
	}
	mb.ReceiveMyMessages(myThread)
}

func (mb *MailBox[T]) ClearMyMessages(myThread int) {
	mb.ReceiveMsgQs[myThread].Reset()
}

/*
PartitionMap splits the index range [0, MaxIndex) into ParallelDegree
contiguous buckets whose sizes differ by at most one, the larger buckets
first. Worker n owns bucket n; the reverse lookup finds the bucket holding a
given index from a proportional first guess.
*/
type PartitionMap struct {
	MaxIndex       int
	ParallelDegree int
	Partitions     [][2]int
}

func NewPartitionMap(ParallelDegree, maxIndex int) (pm *PartitionMap) {
	pm = &PartitionMap{
		MaxIndex:       maxIndex,
		ParallelDegree: ParallelDegree,
		Partitions:     make([][2]int, ParallelDegree),
	}
	for n := 0; n < ParallelDegree; n++ {
		pm.Partitions[n] = pm.Split1D(n)
	}
	return
}

// Split1D computes the half open index range of bucket threadNum, spreading
// the remainder one element each over the leading buckets
func (pm *PartitionMap) Split1D(threadNum int) (bucket [2]int) {
	size := pm.MaxIndex / pm.ParallelDegree
	rem := pm.MaxIndex % pm.ParallelDegree
	add, shift := 0, rem
	if threadNum < rem {
		add, shift = 1, threadNum
	}
	bucket[0] = threadNum*size + shift
	bucket[1] = bucket[0] + size + add
	return
}

// GetBucketRange returns the half open index range of one bucket
func (pm *PartitionMap) GetBucketRange(bucketNum int) (kMin, kMax int) {
	kMin, kMax = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
	return
}

// GetBucketDimension returns the element count of one bucket
func (pm *PartitionMap) GetBucketDimension(bn int) (kMax int) {
	k1, k2 := pm.GetBucketRange(bn)
	kMax = k2 - k1
	return
}

func (pm *PartitionMap) getBucketWithTryCount(kDim int) (tryCount, bucketNum, min, max int) {
	// The proportional guess lands at most one bucket away
	bucketNum = pm.ParallelDegree * kDim / pm.MaxIndex
	for {
		min, max = pm.Partitions[bucketNum][0], pm.Partitions[bucketNum][1]
		if kDim >= min && kDim < max {
			return
		}
		if kDim < min {
			bucketNum--
		} else {
			bucketNum++
		}
		if bucketNum < 0 || bucketNum >= pm.ParallelDegree {
			return 0, -1, 0, 0
		}
		tryCount++
	}
}
