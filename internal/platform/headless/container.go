package headless

import (
	"fmt"
	"sync"

	"github.com/GriffinCanCode/appshell/internal/domain/shell"
)

// Node is a mounted application
type Node struct {
	id  string
	app string
}

// ID returns the node id
func (n *Node) ID() string { return n.id }

// App returns the application name
func (n *Node) App() string { return n.app }

// Container keeps the mounted application as its only child
type Container struct {
	mu     sync.Mutex
	child  *Node
	seq    int
	mounts int
}

// NewContainer creates an empty container
func NewContainer() *Container { return &Container{} }

// Mount replaces the child with a node for app
func (c *Container) Mount(app shell.AppType) shell.Node {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.seq++
	c.mounts++
	c.child = &Node{id: fmt.Sprintf("%s#%d", app.Name(), c.seq), app: app.Name()}
	return c.child
}

// Clear removes the child
func (c *Container) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.child = nil
}

// Child returns the mounted node, or nil
func (c *Container) Child() *Node {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.child
}

// Mounts returns how many times an application was mounted
func (c *Container) Mounts() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.mounts
}
