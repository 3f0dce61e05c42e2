package domain

import "github.com/google/uuid"

// CartItem is one product+size line in a client-held cart. The pair
// (ProductID, Size) is the uniqueness key.
type CartItem struct {
	ProductID uuid.UUID `json:"productId"`
	Name      string    `json:"name"`
	UnitPrice float64   `json:"unitPrice"`
	Size      string    `json:"size"`
	Quantity  int       `json:"quantity"`
	Image     string    `json:"image,omitempty"`
}

// Cart lives on the client (signed cookie); the server only decodes, mutates
// and re-signs it. It is never persisted server-side before checkout.
type Cart struct {
	Items []CartItem `json:"items"`
}

func (c *Cart) find(productID uuid.UUID, size string) int {
	for i := range c.Items {
		if c.Items[i].ProductID == productID && c.Items[i].Size == size {
			return i
		}
	}
	return -1
}

// Add merges into an existing (productID, size) entry by incrementing its
// quantity, otherwise appends the item with quantity 1.
func (c *Cart) Add(item CartItem) {
	if i := c.find(item.ProductID, item.Size); i >= 0 {
		c.Items[i].Quantity++
		return
	}
	item.Quantity = 1
	c.Items = append(c.Items, item)
}

func (c *Cart) Remove(productID uuid.UUID, size string) {
	if i := c.find(productID, size); i >= 0 {
		c.Items = append(c.Items[:i], c.Items[i+1:]...)
	}
}

func (c *Cart) Increase(productID uuid.UUID, size string) {
	if i := c.find(productID, size); i >= 0 {
		c.Items[i].Quantity++
	}
}

// Decrease is a no-op at quantity 1; removing the last unit is Remove's job.
func (c *Cart) Decrease(productID uuid.UUID, size string) {
	if i := c.find(productID, size); i >= 0 && c.Items[i].Quantity > 1 {
		c.Items[i].Quantity--
	}
}

// ChangeSize moves an entry to a new size. If an entry already exists at the
// target size the moved quantity is merged into it and the old entry removed.
func (c *Cart) ChangeSize(productID uuid.UUID, oldSize, newSize string) {
	if oldSize == newSize {
		return
	}
	src := c.find(productID, oldSize)
	if src < 0 {
		return
	}
	if dst := c.find(productID, newSize); dst >= 0 {
		c.Items[dst].Quantity += c.Items[src].Quantity
		c.Items = append(c.Items[:src], c.Items[src+1:]...)
		return
	}
	c.Items[src].Size = newSize
}

func (c *Cart) Clear() { c.Items = nil }

func (c *Cart) TotalItems() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

func (c *Cart) TotalPrice() float64 {
	t := 0.0
	for _, it := range c.Items {
		t += it.UnitPrice * float64(it.Quantity)
	}
	return t
}
