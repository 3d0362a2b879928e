package litepage_test

import (
	"github.com/bsm/litepage"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseNode", func() {
	It("should parse table leaves", func() {
		node, err := litepage.ParseNode(leafPage, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(node.Type).To(Equal(litepage.TableLeaf))
		Expect(node.NumCells).To(Equal(uint16(2)))
		Expect(node.CellOffset).To(Equal(17))
		Expect(node.FirstFreeblock).To(Equal(uint16(0)))
		Expect(node.FragmentedBytes).To(Equal(uint8(0)))
		Expect(node.HasRightChild()).To(BeFalse())
		Expect(node.RightChild).To(BeZero())
		Expect(node.Pointers).To(Equal([]int{25, 17}))
		Expect(node.Children).To(BeNil())
		Expect(node.Err()).NotTo(HaveOccurred())

		Expect(node.Cells).To(HaveLen(2))
		Expect(node.Cells[0].Err).NotTo(HaveOccurred())
		Expect(node.Cells[0].Cell).To(Equal(&litepage.Cell{
			PayloadSize: 5,
			RowID:       1,
			Payload:     []byte{0x03, 0x11, 0x09, 0x68, 0x69},
			End:         32,
		}))
		Expect(node.Cells[1].Err).NotTo(HaveOccurred())
		Expect(node.Cells[1].Cell).To(Equal(&litepage.Cell{
			PayloadSize: 6,
			RowID:       2,
			Payload:     []byte{0x03, 0x11, 0x01, 0x79, 0x6f, 0x02},
			End:         25,
		}))
	})

	It("should parse page 1", func() {
		page := newPageWriter(512, litepage.TableLeaf, true).
			AppendRow(1, encodeRecord("table", "test", "test", int64(2), schemaSQL)).
			Bytes()

		node, err := litepage.ParseNode(page, true)
		Expect(err).NotTo(HaveOccurred())
		Expect(node.Type).To(Equal(litepage.TableLeaf))
		Expect(node.Cells).To(HaveLen(1))
		Expect(node.Cells[0].Err).NotTo(HaveOccurred())
		Expect(node.Cells[0].RowID).To(Equal(int64(1)))
		Expect(node.Cells[0].End).To(Equal(512))

		rec, err := node.Cells[0].Record(nil)
		Expect(err).NotTo(HaveOccurred())
		Expect(rec.Columns).To(Equal([]litepage.Column{
			{Type: litepage.Text, Length: 5},
			{Type: litepage.Text, Length: 4},
			{Type: litepage.Text, Length: 4},
			{Type: litepage.Int8},
			{Type: litepage.Text, Length: 44},
		}))
		Expect(rec.Values).To(Equal([]interface{}{"table", "test", "test", int64(2), schemaSQL}))

		// without the header flag, the magic string is read as the page header
		_, err = litepage.ParseNode(page, false)
		Expect(err).To(MatchError(litepage.ErrInvalidEnum))
	})

	It("should parse table interiors", func() {
		w := newPageWriter(64, litepage.TableInterior, false).
			AppendChild(2, 10).
			AppendChild(3, 300)
		w.RightChild = 4

		node, err := litepage.ParseNode(w.Bytes(), false)
		Expect(err).NotTo(HaveOccurred())
		Expect(node.Type).To(Equal(litepage.TableInterior))
		Expect(node.HasRightChild()).To(BeTrue())
		Expect(node.RightChild).To(Equal(uint32(4)))
		Expect(node.Cells).To(BeNil())
		Expect(node.Children).To(Equal([]litepage.ChildCell{
			{Offset: 59, ChildPage: 2, RowID: 10},
			{Offset: 53, ChildPage: 3, RowID: 300},
		}))
	})

	It("should parse index pages up to the pointer array", func() {
		for _, typ := range []litepage.NodeType{litepage.IndexLeaf, litepage.IndexInterior} {
			page := newPageWriter(64, typ, false).
				AppendRaw([]byte{0x03, 0x02, 0x01, 0x07}).
				Bytes()

			node, err := litepage.ParseNode(page, false)
			Expect(err).NotTo(HaveOccurred(), "for %s", typ)
			Expect(node.Type).To(Equal(typ))
			Expect(node.Pointers).To(Equal([]int{60}))
			Expect(node.Cells).To(BeNil())
			Expect(node.Children).To(BeNil())
		}
	})

	It("should reject invalid node types", func() {
		page := append([]byte(nil), leafPage...)
		for _, c := range []byte{0, 1, 3, 4, 6, 12, 14, 255} {
			page[0] = c
			_, err := litepage.ParseNode(page, false)
			Expect(err).To(MatchError(litepage.ErrInvalidEnum), "for %d", c)
		}
	})

	It("should reject truncated pages", func() {
		_, err := litepage.ParseNode(leafPage[:4], false)
		Expect(err).To(MatchError(litepage.ErrBounds))

		_, err = litepage.ParseNode(leafPage[:10], false)
		Expect(err).To(MatchError(litepage.ErrBounds))

		_, err = litepage.ParseNode(leafPage, true)
		Expect(err).To(MatchError(litepage.ErrBounds))
	})

	It("should reject content offsets beyond the page", func() {
		page := append([]byte(nil), leafPage...)
		page[5], page[6] = 0x00, 0x21
		_, err := litepage.ParseNode(page, false)
		Expect(err).To(MatchError(litepage.ErrBounds))
	})

	It("should collect per-cell errors", func() {
		page := append([]byte(nil), leafPage...)
		page[8], page[9] = 0x00, 0x40 // pointer beyond the page

		node, err := litepage.ParseNode(page, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(node.Cells).To(HaveLen(2))
		Expect(node.Cells[0].Err).To(MatchError(litepage.ErrBounds))
		Expect(node.Cells[1].Err).NotTo(HaveOccurred())
		Expect(node.Cells[1].RowID).To(Equal(int64(2)))
		Expect(node.Err()).To(MatchError(litepage.ErrBounds))
	})

	It("should reject payloads which overflow", func() {
		page := append([]byte(nil), leafPage...)
		page[25] = 0x7f // payload size of row 1

		node, err := litepage.ParseNode(page, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(node.Cells[0].Err).To(MatchError(litepage.ErrOverflowNotSupported))
		Expect(node.Cells[1].Err).NotTo(HaveOccurred())
	})

	It("should be idempotent", func() {
		page := append([]byte(nil), leafPage...)
		n1, err := litepage.ParseNode(page, false)
		Expect(err).NotTo(HaveOccurred())
		n2, err := litepage.ParseNode(page, false)
		Expect(err).NotTo(HaveOccurred())
		Expect(n1).To(Equal(n2))
		Expect(page).To(Equal(leafPage))
	})
})
