package framesched

func (s *Scheduler) makeQueue() runQueue {
	switch s.opts.QT {
	case ScanQueue:
		return newScanQueue(initialQueueCapacity)
	case HeapQueue:
		return newHeapQueue(initialQueueCapacity)

	default:
		return newScanQueue(initialQueueCapacity)
	}
}
