package texshare

import (
	"strings"
	"sync"
	"testing"
	"time"
	"unsafe"

	"github.com/google/uuid"
)

// mockObject is one fake native object.
type mockObject struct {
	kind     string
	refs     int
	released bool

	id, name, app string
	desc          unsafe.Pointer // server description of a server or client
	items         []unsafe.Pointer
	options       map[optionKey]uint64
	token         uintptr
	texture       uint32
	size          Size
	newFrame      bool
	hasClients    bool
	ownsDesc      bool // private server, description not in the directory
}

type mockCall struct {
	op  string
	ptr unsafe.Pointer
}

// mockSyphon is an in-memory Syphon table. It hands out
// distinct non-nil pointers, models retain counts and
// records the order of lifecycle calls.
type mockSyphon struct {
	nullSyphon

	mu      sync.Mutex
	objects map[unsafe.Pointer]*mockObject
	keep    [][]byte
	calls   []mockCall
	misuse  []string

	dir          unsafe.Pointer
	servers      []unsafe.Pointer
	noDirectory  bool
	failCreate   bool
	textures     map[uint32][]byte
	nextTexture  uint32
	publishCount int
}

func newMockSyphon() *mockSyphon {
	return &mockSyphon{
		objects:  make(map[unsafe.Pointer]*mockObject),
		textures: make(map[uint32][]byte),
	}
}

// installMockSyphon swaps in a fresh mock for the
// duration of the test.
func installMockSyphon(t *testing.T) *mockSyphon {
	t.Helper()

	m := newMockSyphon()
	restore := useSyphonNative(m)
	t.Cleanup(func() {
		restore()
		m.assertClean(t)
	})

	return m
}

func (m *mockSyphon) alloc(kind string) (unsafe.Pointer, *mockObject) {
	b := make([]byte, 1)
	m.keep = append(m.keep, b)

	ptr := unsafe.Pointer(&b[0])
	obj := &mockObject{kind: kind, refs: 1}
	m.objects[ptr] = obj
	m.calls = append(m.calls, mockCall{op: "create " + kind, ptr: ptr})

	return ptr, obj
}

func (m *mockSyphon) record(op string, ptr unsafe.Pointer) {
	m.calls = append(m.calls, mockCall{op: op, ptr: ptr})
}

// live returns the object behind ptr, noting a misuse
// when it is unknown or already released.
func (m *mockSyphon) live(op string, ptr unsafe.Pointer) *mockObject {
	obj, ok := m.objects[ptr]
	if !ok {
		m.misuse = append(m.misuse, op+" on unknown pointer")
		return nil
	}
	if obj.released || obj.refs <= 0 {
		m.misuse = append(m.misuse, op+" after release of "+obj.kind)
		return nil
	}

	return obj
}

func (m *mockSyphon) free(op string, ptr unsafe.Pointer) {
	obj := m.live(op, ptr)
	if obj == nil {
		return
	}
	obj.refs--
	if obj.refs == 0 {
		obj.released = true
	}
	m.record(op, ptr)
}

// ops lists the recorded operations on ptr in order.
func (m *mockSyphon) ops(ptr unsafe.Pointer) []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	var ops []string
	for _, c := range m.calls {
		if c.ptr == ptr {
			ops = append(ops, c.op)
		}
	}

	return ops
}

func (m *mockSyphon) count(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.calls {
		if c.op == op {
			n++
		}
	}

	return n
}

func (m *mockSyphon) refs(ptr unsafe.Pointer) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj, ok := m.objects[ptr]; ok {
		return obj.refs
	}

	return 0
}

func (m *mockSyphon) object(ptr unsafe.Pointer) *mockObject {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.objects[ptr]
}

func (m *mockSyphon) assertClean(t *testing.T) {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, msg := range m.misuse {
		t.Errorf("native misuse: %s", msg)
	}
	listed := make(map[unsafe.Pointer]bool, len(m.servers))
	for _, ptr := range m.servers {
		listed[ptr] = true
	}

	for ptr, obj := range m.objects {
		switch obj.kind {
		case "directory":
			continue
		case "description":
			// Only the directory may still hold a description.
			want := 0
			if listed[ptr] {
				want = 1
			}
			if obj.refs != want {
				t.Errorf("description %p has %d refs, want %d", ptr, obj.refs, want)
			}
			continue
		}
		if !obj.released {
			t.Errorf("%s %p never released", obj.kind, ptr)
		}
	}
}

// addServer publishes a fake server in the directory
// and returns its description pointer.
func (m *mockSyphon) addServer(name, app string) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.addServerLocked(name, app)
}

func (m *mockSyphon) addServerLocked(name, app string) unsafe.Pointer {
	ptr, obj := m.alloc("description")
	obj.id = uuid.NewString()
	obj.name = name
	obj.app = app
	m.servers = append(m.servers, ptr)

	return ptr
}

func (m *mockSyphon) removeServer(desc unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.removeServerLocked(desc)
}

func (m *mockSyphon) removeServerLocked(desc unsafe.Pointer) {
	for i, ptr := range m.servers {
		if ptr == desc {
			m.servers = append(m.servers[:i], m.servers[i+1:]...)
			m.free("directory drop", desc)
			return
		}
	}
}

// fireNewFrame delivers a new-frame callback for client
// from a goroutine standing in for the native thread.
func (m *mockSyphon) fireNewFrame(client unsafe.Pointer) <-chan struct{} {
	m.mu.Lock()
	var token uintptr
	if obj, ok := m.objects[client]; ok {
		obj.newFrame = true
		token = obj.token
	}
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)
		dispatchNewFrame(token)
	}()

	return done
}

func (m *mockSyphon) DirectoryShared() unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.noDirectory {
		return nil
	}
	if m.dir == nil {
		m.dir, _ = m.alloc("directory")
	}

	return m.dir
}

func (m *mockSyphon) DirectoryServersCount(dir unsafe.Pointer) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	return len(m.servers)
}

func (m *mockSyphon) DirectoryServerAt(dir unsafe.Pointer, index int) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if index < 0 || index >= len(m.servers) {
		return nil
	}

	return m.servers[index]
}

func (m *mockSyphon) DirectoryServersMatching(dir unsafe.Pointer, name, appName string) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	ptr, obj := m.alloc("match")
	for _, desc := range m.servers {
		d := m.objects[desc]
		if name != "" && d.name != name {
			continue
		}
		if appName != "" && d.app != appName {
			continue
		}
		d.refs++
		obj.items = append(obj.items, desc)
	}

	return ptr
}

func (m *mockSyphon) MatchCount(match unsafe.Pointer) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("match count", match); obj != nil {
		return len(obj.items)
	}

	return 0
}

func (m *mockSyphon) MatchAt(match unsafe.Pointer, index int) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("match at", match)
	if obj == nil || index < 0 || index >= len(obj.items) {
		return nil
	}

	desc := obj.items[index]
	m.objects[desc].refs++
	m.record("retain", desc)

	return desc
}

func (m *mockSyphon) MatchRelease(match unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("release", match)
	if obj == nil {
		return
	}
	for _, desc := range obj.items {
		m.free("match drop", desc)
	}
	m.free("release", match)
}

func (m *mockSyphon) NotificationName(kind notificationKind) (string, bool) {
	switch kind {
	case notificationAnnounce:
		return "info.v002.Syphon.ServerAnnounceNotification", true
	case notificationUpdate:
		return "info.v002.Syphon.ServerUpdateNotification", true
	case notificationRetire:
		return "info.v002.Syphon.ServerRetireNotification", true
	default:
		return "", false
	}
}

func (m *mockSyphon) DescriptionString(desc unsafe.Pointer, field descriptionField) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("description read", desc)
	if obj == nil {
		return "", false
	}

	switch field {
	case fieldUUID:
		return obj.id, obj.id != ""
	case fieldName:
		return obj.name, obj.name != ""
	case fieldAppName:
		return obj.app, obj.app != ""
	default:
		return "", false
	}
}

func (m *mockSyphon) DescriptionRetain(desc unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("retain", desc); obj != nil {
		obj.refs++
		m.record("retain", desc)
	}
}

func (m *mockSyphon) DescriptionRelease(desc unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.free("description release", desc)
}

func (m *mockSyphon) OptionsCreate() unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	ptr, obj := m.alloc("options")
	obj.options = make(map[optionKey]uint64)

	return ptr
}

func (m *mockSyphon) OptionsSetBool(opts unsafe.Pointer, key optionKey, value bool) bool {
	var v uint64
	if value {
		v = 1
	}

	return m.OptionsSetUint(opts, key, v)
}

func (m *mockSyphon) OptionsSetUint(opts unsafe.Pointer, key optionKey, value uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("option set", opts)
	if obj == nil {
		return false
	}
	obj.options[key] = value

	return true
}

func (m *mockSyphon) OptionsRelease(opts unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.free("release", opts)
}

// createServer makes a server object with its own
// description, published unless the options say private.
func (m *mockSyphon) createServer(kind, name string, opts unsafe.Pointer) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreate {
		return nil
	}

	private := false
	if opts != nil {
		if o := m.live("server create options", opts); o != nil {
			private = o.options[optionIsPrivate] == 1
		}
	}

	ptr, obj := m.alloc(kind)
	obj.name = name
	if private {
		descPtr, desc := m.alloc("description")
		desc.id = uuid.NewString()
		desc.name = name
		desc.app = "texshare.test"
		obj.desc = descPtr
		obj.ownsDesc = true
	} else {
		obj.desc = m.addServerLocked(name, "texshare.test")
	}

	return ptr
}

func (m *mockSyphon) stopServer(server unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("stop", server)
	if obj == nil {
		return
	}
	m.record("stop", server)
	m.removeServerLocked(obj.desc)
}

func (m *mockSyphon) release(ptr unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj, ok := m.objects[ptr]
	m.free("release", ptr)
	if ok && obj.ownsDesc && obj.released {
		m.free("server drop", obj.desc)
	}
}

func (m *mockSyphon) serverDescription(server unsafe.Pointer) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("server description", server)
	if obj == nil || obj.desc == nil {
		return nil
	}
	if d := m.live("server description", obj.desc); d != nil {
		d.refs++
		m.record("retain", obj.desc)
		return obj.desc
	}

	return nil
}

func (m *mockSyphon) name(server unsafe.Pointer) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("name", server)
	if obj == nil || obj.name == "" {
		return "", false
	}

	return obj.name, true
}

func (m *mockSyphon) setName(server unsafe.Pointer, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("set name", server); obj != nil {
		obj.name = name
		m.record("set name", server)
	}
}

func (m *mockSyphon) hasClients(server unsafe.Pointer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("has clients", server)
	return obj != nil && obj.hasClients
}

func (m *mockSyphon) frame(owner unsafe.Pointer, kind string) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("new frame", owner)
	if obj == nil || (obj.texture == 0 && kind == "glimage") {
		return nil
	}
	obj.newFrame = false

	ptr, img := m.alloc(kind)
	img.texture = obj.texture
	img.size = obj.size

	return ptr
}

func (m *mockSyphon) OpenGLServerCreate(name string, ctx CGLContext, opts unsafe.Pointer) unsafe.Pointer {
	return m.createServer("glserver", name, opts)
}

func (m *mockSyphon) OpenGLServerRelease(server unsafe.Pointer) { m.release(server) }
func (m *mockSyphon) OpenGLServerHasClients(server unsafe.Pointer) bool {
	return m.hasClients(server)
}
func (m *mockSyphon) OpenGLServerDescription(server unsafe.Pointer) unsafe.Pointer {
	return m.serverDescription(server)
}

func (m *mockSyphon) OpenGLServerPublishFrame(server unsafe.Pointer, texID, target uint32, region Rect, textureSize Size, flipped bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("publish", server)
	if obj == nil {
		return
	}
	obj.texture = texID
	obj.size = textureSize
	m.publishCount++
	m.record("publish", server)

	// Clients attached to this server see the frame.
	for _, other := range m.objects {
		if other.kind == "glclient" && !other.released && other.desc == obj.desc {
			other.texture = texID
			other.size = textureSize
			other.newFrame = true
		}
	}
}

func (m *mockSyphon) OpenGLServerBindToDrawFrame(server unsafe.Pointer, size Size) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("bind", server) == nil {
		return false
	}
	m.record("bind", server)

	return true
}

func (m *mockSyphon) OpenGLServerUnbindAndPublish(server unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("unbind", server) != nil {
		m.record("unbind", server)
	}
}

func (m *mockSyphon) OpenGLServerStop(server unsafe.Pointer)               { m.stopServer(server) }
func (m *mockSyphon) OpenGLServerContext(server unsafe.Pointer) CGLContext { return nil }
func (m *mockSyphon) OpenGLServerName(server unsafe.Pointer) (string, bool) {
	return m.name(server)
}
func (m *mockSyphon) OpenGLServerSetName(server unsafe.Pointer, name string) {
	m.setName(server, name)
}
func (m *mockSyphon) OpenGLServerNewFrameImage(server unsafe.Pointer) unsafe.Pointer {
	return m.frame(server, "glimage")
}

func (m *mockSyphon) createClient(kind string, desc unsafe.Pointer, token uintptr) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.failCreate || m.live("client create", desc) == nil {
		return nil
	}

	// The client keeps its own retain on the description.
	m.objects[desc].refs++
	m.record("retain", desc)

	ptr, obj := m.alloc(kind)
	obj.desc = desc
	obj.token = token

	return ptr
}

func (m *mockSyphon) releaseClient(client unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("release", client)
	if obj == nil {
		return
	}
	desc := obj.desc
	m.free("release", client)
	m.free("description release", desc)
}

func (m *mockSyphon) stopClient(client unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("stop", client) != nil {
		m.record("stop", client)
	}
}

func (m *mockSyphon) clientValid(client unsafe.Pointer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("is valid", client)
	if obj == nil {
		return false
	}
	d := m.objects[obj.desc]
	for _, ptr := range m.servers {
		if m.objects[ptr].id == d.id {
			return true
		}
	}

	return false
}

func (m *mockSyphon) clientHasNewFrame(client unsafe.Pointer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("has new frame", client)
	return obj != nil && obj.newFrame
}

func (m *mockSyphon) clientDescription(client unsafe.Pointer) unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("client description", client)
	if obj == nil {
		return nil
	}
	m.objects[obj.desc].refs++
	m.record("retain", obj.desc)

	return obj.desc
}

func (m *mockSyphon) OpenGLClientCreate(desc unsafe.Pointer, ctx CGLContext, token uintptr) unsafe.Pointer {
	return m.createClient("glclient", desc, token)
}
func (m *mockSyphon) OpenGLClientRelease(client unsafe.Pointer) { m.releaseClient(client) }
func (m *mockSyphon) OpenGLClientIsValid(client unsafe.Pointer) bool {
	return m.clientValid(client)
}
func (m *mockSyphon) OpenGLClientHasNewFrame(client unsafe.Pointer) bool {
	return m.clientHasNewFrame(client)
}
func (m *mockSyphon) OpenGLClientNewFrameImage(client unsafe.Pointer) unsafe.Pointer {
	return m.frame(client, "glimage")
}
func (m *mockSyphon) OpenGLClientStop(client unsafe.Pointer)               { m.stopClient(client) }
func (m *mockSyphon) OpenGLClientContext(client unsafe.Pointer) CGLContext { return nil }
func (m *mockSyphon) OpenGLClientDescription(client unsafe.Pointer) unsafe.Pointer {
	return m.clientDescription(client)
}

func (m *mockSyphon) OpenGLImageRelease(image unsafe.Pointer) { m.release(image) }

func (m *mockSyphon) OpenGLImageTextureName(image unsafe.Pointer) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("texture name", image); obj != nil {
		return obj.texture
	}

	return 0
}

func (m *mockSyphon) OpenGLImageTextureSize(image unsafe.Pointer) Size {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("texture size", image); obj != nil {
		return obj.size
	}

	return Size{}
}

func (m *mockSyphon) MetalServerCreate(name string, device MTLDevice, opts unsafe.Pointer) unsafe.Pointer {
	return m.createServer("mtlserver", name, opts)
}
func (m *mockSyphon) MetalServerRelease(server unsafe.Pointer) { m.release(server) }
func (m *mockSyphon) MetalServerHasClients(server unsafe.Pointer) bool {
	return m.hasClients(server)
}
func (m *mockSyphon) MetalServerDescription(server unsafe.Pointer) unsafe.Pointer {
	return m.serverDescription(server)
}

func (m *mockSyphon) MetalServerPublishFrame(server unsafe.Pointer, texture MTLTexture, commandBuffer MTLCommandBuffer, region Rect, flipped bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("publish", server)
	if obj == nil {
		return
	}
	obj.texture = 1
	m.publishCount++
	m.record("publish", server)
}

func (m *mockSyphon) MetalServerNewFrameImage(server unsafe.Pointer) unsafe.Pointer {
	return m.frame(server, "mtltexture")
}
func (m *mockSyphon) MetalServerStop(server unsafe.Pointer)             { m.stopServer(server) }
func (m *mockSyphon) MetalServerDevice(server unsafe.Pointer) MTLDevice { return nil }
func (m *mockSyphon) MetalServerName(server unsafe.Pointer) (string, bool) {
	return m.name(server)
}
func (m *mockSyphon) MetalServerSetName(server unsafe.Pointer, name string) {
	m.setName(server, name)
}

func (m *mockSyphon) MetalClientCreate(desc unsafe.Pointer, device MTLDevice, token uintptr) unsafe.Pointer {
	return m.createClient("mtlclient", desc, token)
}
func (m *mockSyphon) MetalClientRelease(client unsafe.Pointer) { m.releaseClient(client) }
func (m *mockSyphon) MetalClientIsValid(client unsafe.Pointer) bool {
	return m.clientValid(client)
}
func (m *mockSyphon) MetalClientHasNewFrame(client unsafe.Pointer) bool {
	return m.clientHasNewFrame(client)
}
func (m *mockSyphon) MetalClientNewFrameImage(client unsafe.Pointer) unsafe.Pointer {
	return m.frame(client, "mtltexture")
}
func (m *mockSyphon) MetalClientStop(client unsafe.Pointer) { m.stopClient(client) }
func (m *mockSyphon) MetalClientDescription(client unsafe.Pointer) unsafe.Pointer {
	return m.clientDescription(client)
}

func (m *mockSyphon) MetalTextureRelease(texture unsafe.Pointer) { m.release(texture) }

func (m *mockSyphon) GLCreateTextureRectangleRGBA8(width, height int, rgba []byte) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.nextTexture++
	m.textures[m.nextTexture] = append([]byte(nil), rgba[:width*height*4]...)
	m.record("upload", nil)

	return m.nextTexture
}

func (m *mockSyphon) GLReadTextureRectangleRGBA8(texID uint32, width, height int, out []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	copy(out, m.textures[texID])
	m.record("readback", nil)
}

func (m *mockSyphon) GLDeleteTexture(texID uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.textures, texID)
}

// mockSpout is an in-memory Spout table with a single
// process-wide sender registry.
type mockSpout struct {
	nullSpout

	mu      sync.Mutex
	objects map[unsafe.Pointer]*mockSpoutObject
	keep    [][]byte
	calls   []string
	misuse  []string

	senders  map[string]*mockSenderState
	order    []string
	active   string
	memory   map[string][]byte
	syncs    map[string]int
	frameSig chan struct{}
	cpuMode  bool
	buffers  int
	bufMode  bool
}

type mockSpoutObject struct {
	released   bool
	senderName string // as a sender
	receiveOf  string // as a receiver, "" for active
	lastFrame  int64
	format     uint32
	syncOn     bool
}

type mockSenderState struct {
	width, height uint32
	format        uint32
	pixels        []byte
	frame         int64
}

func newMockSpout() *mockSpout {
	return &mockSpout{
		objects:  make(map[unsafe.Pointer]*mockSpoutObject),
		senders:  make(map[string]*mockSenderState),
		memory:   make(map[string][]byte),
		syncs:    make(map[string]int),
		frameSig: make(chan struct{}, 1),
		buffers:  2,
	}
}

func installMockSpout(t *testing.T) *mockSpout {
	t.Helper()

	m := newMockSpout()
	restore := useSpoutNative(m)
	t.Cleanup(func() {
		restore()
		m.assertClean(t)
	})

	return m
}

func (m *mockSpout) assertClean(t *testing.T) {
	t.Helper()

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, msg := range m.misuse {
		t.Errorf("native misuse: %s", msg)
	}
	for ptr, obj := range m.objects {
		if !obj.released {
			t.Errorf("spout object %p never destroyed", ptr)
		}
	}
}

func (m *mockSpout) live(op string, h unsafe.Pointer) *mockSpoutObject {
	m.calls = append(m.calls, op)

	obj, ok := m.objects[h]
	if !ok || obj.released {
		m.misuse = append(m.misuse, op+" on dead handle")
		return nil
	}

	return obj
}

func (m *mockSpout) callCount(op string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, c := range m.calls {
		if c == op {
			n++
		}
	}

	return n
}

func (m *mockSpout) callLog() string {
	m.mu.Lock()
	defer m.mu.Unlock()

	return strings.Join(m.calls, ",")
}

// receiverSender resolves the sender a receiver reads.
func (m *mockSpout) receiverSender(obj *mockSpoutObject) *mockSenderState {
	name := obj.receiveOf
	if name == "" {
		name = m.active
	}

	return m.senders[name]
}

func (m *mockSpout) Create() unsafe.Pointer {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := make([]byte, 1)
	m.keep = append(m.keep, b)
	ptr := unsafe.Pointer(&b[0])
	m.objects[ptr] = &mockSpoutObject{}
	m.calls = append(m.calls, "create")

	return ptr
}

func (m *mockSpout) Destroy(h unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("destroy", h); obj != nil {
		obj.released = true
	}
}

func (m *mockSpout) SenderSetName(h unsafe.Pointer, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("sender set name", h); obj != nil {
		obj.senderName = name
	}
}

func (m *mockSpout) SenderSetFormat(h unsafe.Pointer, dxgiFormat uint32) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("sender set format", h); obj != nil {
		obj.format = dxgiFormat
	}
}

func (m *mockSpout) SenderSendImage(h unsafe.Pointer, pixels []byte, width, height, glFormat uint32, invert bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("send image", h)
	if obj == nil || obj.senderName == "" {
		return false
	}

	state, ok := m.senders[obj.senderName]
	if !ok {
		state = &mockSenderState{}
		m.senders[obj.senderName] = state
		m.order = append(m.order, obj.senderName)
		if m.active == "" {
			m.active = obj.senderName
		}
	}
	state.width, state.height = width, height
	state.format = obj.format
	state.pixels = append(state.pixels[:0], pixels[:int(width)*int(height)*BytesPerPixel(glFormat)]...)
	state.frame++

	return true
}

func (m *mockSpout) SenderSendTexture(h unsafe.Pointer, texID, target, width, height uint32, invert bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.live("send texture", h) != nil && texID != 0
}

func (m *mockSpout) SenderRelease(h unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("sender release", h)
	if obj == nil {
		return
	}
	if _, ok := m.senders[obj.senderName]; ok {
		delete(m.senders, obj.senderName)
		for i, n := range m.order {
			if n == obj.senderName {
				m.order = append(m.order[:i], m.order[i+1:]...)
				break
			}
		}
		if m.active == obj.senderName {
			m.active = ""
		}
	}
}

func (m *mockSpout) SenderIsInitialized(h unsafe.Pointer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("sender is initialized", h)
	if obj == nil {
		return false
	}
	_, ok := m.senders[obj.senderName]

	return ok
}

func (m *mockSpout) senderState(op string, h unsafe.Pointer) *mockSenderState {
	obj := m.live(op, h)
	if obj == nil {
		return nil
	}

	return m.senders[obj.senderName]
}

func (m *mockSpout) SenderWidth(h unsafe.Pointer) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.senderState("sender width", h); s != nil {
		return s.width
	}

	return 0
}

func (m *mockSpout) SenderHeight(h unsafe.Pointer) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.senderState("sender height", h); s != nil {
		return s.height
	}

	return 0
}

func (m *mockSpout) SenderName(h unsafe.Pointer) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("sender name", h)
	if obj == nil || obj.senderName == "" {
		return "", false
	}

	return obj.senderName, true
}

func (m *mockSpout) SenderFormat(h unsafe.Pointer) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("sender format", h); obj != nil {
		return obj.format
	}

	return 0
}

func (m *mockSpout) SenderFrame(h unsafe.Pointer) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.senderState("sender frame", h); s != nil {
		return s.frame
	}

	return 0
}

func (m *mockSpout) ReceiverSetName(h unsafe.Pointer, senderName string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("receiver set name", h); obj != nil {
		obj.receiveOf = senderName
	}
}

func (m *mockSpout) ReceiverReceiveImage(h unsafe.Pointer, pixels []byte, glFormat uint32, invert bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("receive image", h)
	if obj == nil {
		return false
	}
	s := m.receiverSender(obj)
	if s == nil {
		return false
	}
	copy(pixels, s.pixels)
	obj.lastFrame = s.frame

	return true
}

func (m *mockSpout) ReceiverRelease(h unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.live("receiver release", h)
}

func (m *mockSpout) ReceiverSenderName(h unsafe.Pointer) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("receiver sender name", h)
	if obj == nil {
		return "", false
	}
	name := obj.receiveOf
	if name == "" {
		name = m.active
	}

	return name, name != ""
}

func (m *mockSpout) ReceiverIsFrameNew(h unsafe.Pointer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("receiver is frame new", h)
	if obj == nil {
		return false
	}
	s := m.receiverSender(obj)

	return s != nil && s.frame > obj.lastFrame
}

func (m *mockSpout) ReceiverIsConnected(h unsafe.Pointer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("receiver is connected", h)
	return obj != nil && m.receiverSender(obj) != nil
}

func (m *mockSpout) ReceiverSenderWidth(h unsafe.Pointer) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("receiver sender width", h)
	if obj == nil {
		return 0
	}
	if s := m.receiverSender(obj); s != nil {
		return s.width
	}

	return 0
}

func (m *mockSpout) ReceiverSenderHeight(h unsafe.Pointer) uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("receiver sender height", h)
	if obj == nil {
		return 0
	}
	if s := m.receiverSender(obj); s != nil {
		return s.height
	}

	return 0
}

func (m *mockSpout) SenderCount(h unsafe.Pointer) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("sender count", h) == nil {
		return 0
	}

	return len(m.order)
}

func (m *mockSpout) SenderNameAt(h unsafe.Pointer, index int) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("sender name at", h) == nil || index >= len(m.order) {
		return "", false
	}

	return m.order[index], true
}

func (m *mockSpout) FindSenderName(h unsafe.Pointer, name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("find sender", h) == nil {
		return false
	}
	_, ok := m.senders[name]

	return ok
}

func (m *mockSpout) ActiveSender(h unsafe.Pointer) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("active sender", h) == nil {
		return "", false
	}

	return m.active, m.active != ""
}

func (m *mockSpout) SetActiveSender(h unsafe.Pointer, name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("set active sender", h) == nil {
		return false
	}
	if _, ok := m.senders[name]; !ok {
		return false
	}
	m.active = name

	return true
}

func (m *mockSpout) SenderInfo(h unsafe.Pointer, name string) (SenderInfo, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("sender info", h) == nil {
		return SenderInfo{}, false
	}
	s, ok := m.senders[name]
	if !ok {
		return SenderInfo{}, false
	}

	return SenderInfo{Width: s.width, Height: s.height, ShareHandle: 0x1234, Format: s.format}, true
}

func (m *mockSpout) SetFrameSync(h unsafe.Pointer, name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("set frame sync", h) == nil {
		return
	}
	m.syncs[name]++
	select {
	case m.frameSig <- struct{}{}:
	default:
	}
}

func (m *mockSpout) WaitFrameSync(h unsafe.Pointer, name string, timeoutMS uint32) bool {
	m.mu.Lock()
	ok := m.live("wait frame sync", h) != nil
	sig := m.frameSig
	m.mu.Unlock()

	if !ok {
		return false
	}

	select {
	case <-sig:
		return true
	default:
	}
	if timeoutMS == 0 {
		return false
	}

	timer := time.NewTimer(time.Duration(timeoutMS) * time.Millisecond)
	defer timer.Stop()

	select {
	case <-sig:
		return true
	case <-timer.C:
		return false
	}
}

func (m *mockSpout) EnableFrameSync(h unsafe.Pointer, enabled bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("enable frame sync", h); obj != nil {
		obj.syncOn = enabled
	}
}

func (m *mockSpout) CloseFrameSync(h unsafe.Pointer) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if obj := m.live("close frame sync", h); obj != nil {
		obj.syncOn = false
	}
}

func (m *mockSpout) IsFrameSyncEnabled(h unsafe.Pointer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	obj := m.live("is frame sync enabled", h)
	return obj != nil && obj.syncOn
}

func (m *mockSpout) WriteMemoryBuffer(h unsafe.Pointer, name string, data []byte) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("write memory", h) == nil {
		return false
	}
	m.memory[name] = append([]byte(nil), data...)

	return true
}

func (m *mockSpout) ReadMemoryBuffer(h unsafe.Pointer, name string, out []byte) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("read memory", h) == nil {
		return 0
	}

	return copy(out, m.memory[name])
}

func (m *mockSpout) MaxSenders(h unsafe.Pointer) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("max senders", h) == nil {
		return 0
	}

	return 64
}

func (m *mockSpout) BufferMode(h unsafe.Pointer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.live("buffer mode", h) != nil && m.bufMode
}

func (m *mockSpout) SetBufferMode(h unsafe.Pointer, active bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("set buffer mode", h) != nil {
		m.bufMode = active
	}
}

func (m *mockSpout) Buffers(h unsafe.Pointer) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("buffers", h) == nil {
		return 0
	}

	return m.buffers
}

func (m *mockSpout) SetBuffers(h unsafe.Pointer, buffers int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("set buffers", h) != nil {
		m.buffers = buffers
	}
}

func (m *mockSpout) CPUMode(h unsafe.Pointer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.live("cpu mode", h) != nil && m.cpuMode
}

func (m *mockSpout) SetCPUMode(h unsafe.Pointer, cpuMode bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.live("set cpu mode", h) == nil {
		return false
	}
	m.cpuMode = cpuMode

	return true
}
