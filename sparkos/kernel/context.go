package kernel

// Context provides task-local access to kernel operations for one Step.
type Context struct {
	k      *Kernel
	taskID TaskID

	blocked     bool
	blockOnTick bool
	blockOn     Endpoint
}

// TaskID returns the current task ID.
func (c *Context) TaskID() TaskID { return c.taskID }

// TryRecv reads one message from the capability endpoint without blocking.
func (c *Context) TryRecv(epCap Capability) (Message, bool) {
	if c.k == nil || !epCap.valid() || !epCap.canRecv() {
		return Message{}, false
	}
	return c.k.recv(epCap.ep)
}

// BlockOnRecv parks the task until a message arrives on epCap.
func (c *Context) BlockOnRecv(epCap Capability) {
	if !epCap.valid() || !epCap.canRecv() {
		return
	}
	c.blocked = true
	c.blockOnTick = false
	c.blockOn = epCap.ep
}

// BlockOnTick parks the task until the next Kernel.Tick.
func (c *Context) BlockOnTick() {
	c.blocked = true
	c.blockOnTick = true
}

// SendTo sends a message to the capability endpoint.
//
// The message From field is set to 0 (unknown).
func (c *Context) SendTo(toCap Capability, kind uint16, payload []byte) bool {
	return c.SendToResult(toCap, kind, payload) == SendOK
}

// SendToResult sends a message to the capability endpoint.
func (c *Context) SendToResult(toCap Capability, kind uint16, payload []byte) SendResult {
	if c.k == nil {
		return SendErrNoEndpoint
	}
	return c.k.Post(toCap, kind, payload)
}

// NowTick returns the last observed tick value.
func (c *Context) NowTick() uint64 {
	if c.k == nil {
		return 0
	}
	return c.k.tick
}

// RequestFrame schedules fn to run on the next kernel tick.
func (c *Context) RequestFrame(fn func()) FrameID {
	if c.k == nil {
		return 0
	}
	return c.k.RequestFrame(fn)
}

// CancelFrame revokes a callback scheduled with RequestFrame.
func (c *Context) CancelFrame(id FrameID) bool {
	if c.k == nil {
		return false
	}
	return c.k.CancelFrame(id)
}
