package dlist

import (
	"reflect"
	"testing"
)

type node struct {
	val  int
	link Node[*node]
}

func (n *node) Link() *Node[*node] { return &n.link }

func traverse(l *List[*node]) []int {
	var out []int
	var zero *node
	for n := l.Head(); n != zero; {
		out = append(out, n.val)
		next := n.Link().next
		if next == zero {
			break
		}
		n = next
	}
	return out
}

func TestPushFront(t *testing.T) {
	var l List[*node]
	a, b, c := &node{val: 1}, &node{val: 2}, &node{val: 3}
	l.PushFront(a)
	l.PushFront(b)
	l.PushFront(c)
	if got := traverse(&l); !reflect.DeepEqual(got, []int{3, 2, 1}) {
		t.Errorf("expected [3 2 1], got %v", got)
	}
	if l.Head().Link().prev != a {
		t.Errorf("expected head.prev to be the tail")
	}
	if n := l.Len(); n != 3 {
		t.Errorf("expected length 3, got %v", n)
	}
}

func TestLen(t *testing.T) {
	var l List[*node]
	if n := l.Len(); n != 0 {
		t.Errorf("expected length 0 on an empty list, got %v", n)
	}
	l.PushFront(&node{val: 1})
	if n := l.Len(); n != 1 {
		t.Errorf("expected length 1, got %v", n)
	}
	l.PushFront(&node{val: 2})
	l.PushFront(&node{val: 3})
	if n := l.Len(); n != 3 {
		t.Errorf("expected length 3, got %v", n)
	}
}

func TestMoveFront(t *testing.T) {
	var l List[*node]
	a, b, c := &node{val: 1}, &node{val: 2}, &node{val: 3}
	l.PushFront(a)
	l.PushFront(b)
	l.PushFront(c) // [3 2 1]

	l.MoveFront(a) // promote the tail
	if got := traverse(&l); !reflect.DeepEqual(got, []int{1, 3, 2}) {
		t.Errorf("expected [1 3 2], got %v", got)
	}
	if l.Head().Link().prev != b {
		t.Errorf("expected new tail to be b, got val %v", l.Head().Link().prev.val)
	}

	l.MoveFront(l.Head()) // no-op on the current head
	if got := traverse(&l); !reflect.DeepEqual(got, []int{1, 3, 2}) {
		t.Errorf("MoveFront(head) should be a no-op, got %v", got)
	}
}

func TestMoveHeadBack(t *testing.T) {
	var l List[*node]
	a, b, c := &node{val: 1}, &node{val: 2}, &node{val: 3}
	l.PushFront(a)
	l.PushFront(b)
	l.PushFront(c) // [3 2 1]

	l.MoveHeadBack()
	if got := traverse(&l); !reflect.DeepEqual(got, []int{2, 1, 3}) {
		t.Errorf("expected [2 1 3], got %v", got)
	}
	l.MoveHeadBack()
	if got := traverse(&l); !reflect.DeepEqual(got, []int{1, 3, 2}) {
		t.Errorf("expected [1 3 2], got %v", got)
	}
}

func TestErase(t *testing.T) {
	var l List[*node]
	a, b, c := &node{val: 1}, &node{val: 2}, &node{val: 3}
	l.PushFront(a)
	l.PushFront(b)
	l.PushFront(c) // [3 2 1]

	l.Erase(b) // erase a middle node
	if got := traverse(&l); !reflect.DeepEqual(got, []int{3, 1}) {
		t.Errorf("expected [3 1], got %v", got)
	}
	if l.Head().Link().prev != a {
		t.Errorf("expected tail pointer unaffected by erasing a middle node")
	}

	l.Erase(a) // erase the tail
	if got := traverse(&l); !reflect.DeepEqual(got, []int{3}) {
		t.Errorf("expected [3], got %v", got)
	}
	if l.Head().Link().prev != c {
		t.Errorf("expected sole element to be its own tail")
	}
}

func TestPopHead(t *testing.T) {
	var l List[*node]
	a, b := &node{val: 1}, &node{val: 2}
	l.PushFront(a)
	l.PushFront(b)

	popped := l.PopHead()
	if popped != b {
		t.Errorf("expected to pop b")
	}
	if got := traverse(&l); !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("expected [1], got %v", got)
	}
	l.PopHead()
	if !l.Empty() {
		t.Errorf("expected list to be empty")
	}
}

func TestScanAndPromote(t *testing.T) {
	var l List[*node]
	a, b, c, d := &node{val: 1}, &node{val: 2}, &node{val: 3}, &node{val: 4}
	l.PushFront(a)
	l.PushFront(b)
	l.PushFront(c)
	l.PushFront(d) // [4 3 2 1]

	n, r, ok := ScanAndPromote(&l, 4, func(n *node) (int, bool) {
		return n.val * 10, n.val == 2
	})
	if !ok || n != b || r != 20 {
		t.Errorf("expected to find and promote b with result 20, got n=%v r=%v ok=%v", n, r, ok)
	}
	if got := traverse(&l); !reflect.DeepEqual(got, []int{2, 4, 3, 1}) {
		t.Errorf("expected [2 4 3 1] after promotion, got %v", got)
	}

	_, _, ok = ScanAndPromote(&l, 4, func(n *node) (int, bool) { return 0, false })
	if ok {
		t.Errorf("expected total scan failure")
	}
	if got := traverse(&l); !reflect.DeepEqual(got, []int{4, 3, 1, 2}) {
		t.Errorf("expected old head demoted to tail, got %v", got)
	}
}
