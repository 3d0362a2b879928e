package litepage_test

import (
	"github.com/bsm/litepage"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseCell", func() {
	It("should parse", func() {
		cell, err := litepage.ParseCell(leafPage, 17)
		Expect(err).NotTo(HaveOccurred())
		Expect(cell.PayloadSize).To(Equal(uint64(6)))
		Expect(cell.RowID).To(Equal(int64(2)))
		Expect(cell.Payload).To(Equal([]byte{0x03, 0x11, 0x01, 0x79, 0x6f, 0x02}))
		Expect(cell.End).To(Equal(25))
	})

	It("should parse multi-byte varints", func() {
		payload := make([]byte, 200)
		page := newPageWriter(512, litepage.TableLeaf, false).
			AppendRow(1<<40, payload).
			Bytes()

		// 2 bytes payload size, 6 bytes row id
		cell, err := litepage.ParseCell(page, 512-208)
		Expect(err).NotTo(HaveOccurred())
		Expect(cell.PayloadSize).To(Equal(uint64(200)))
		Expect(cell.RowID).To(Equal(int64(1 << 40)))
		Expect(cell.Payload).To(HaveLen(200))
		Expect(cell.End).To(Equal(512))
	})

	It("should reject overflowing payloads", func() {
		_, err := litepage.ParseCell([]byte{0x06, 0x01, 0x03, 0x11}, 0)
		Expect(err).To(MatchError(litepage.ErrOverflowNotSupported))

		_, err = litepage.ParseCell([]byte{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}, 0)
		Expect(err).To(MatchError(litepage.ErrOverflowNotSupported))
	})

	It("should reject truncated cells", func() {
		_, err := litepage.ParseCell([]byte{0x06}, 0)
		Expect(err).To(MatchError(litepage.ErrBounds))

		_, err = litepage.ParseCell([]byte{0x06, 0x81}, 0)
		Expect(err).To(MatchError(litepage.ErrBounds))

		_, err = litepage.ParseCell(leafPage, 32)
		Expect(err).To(MatchError(litepage.ErrBounds))
	})

	It("should accept empty payloads", func() {
		cell, err := litepage.ParseCell([]byte{0x00, 0x07}, 0)
		Expect(err).NotTo(HaveOccurred())
		Expect(cell.RowID).To(Equal(int64(7)))
		Expect(cell.Payload).To(BeEmpty())
		Expect(cell.End).To(Equal(2))
	})
})
