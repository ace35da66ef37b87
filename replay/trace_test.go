package replay

import (
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ParseTrace", func() {
	It("should parse reads and invalidations", func() {
		trace := strings.Join([]string{
			"# tick address length requester",
			"0 80",
			"10 0x81 4",
			"",
			"10 c0 16 audio   # mixer",
			"25 invalidate 0 100",
		}, "\n")

		accesses, err := ParseTrace(strings.NewReader(trace))

		Expect(err).NotTo(HaveOccurred())
		Expect(accesses).To(Equal([]Access{
			{Tick: 0, Kind: KindRead, Address: 0x80, Length: 1, Requester: "cpu"},
			{Tick: 10, Kind: KindRead, Address: 0x81, Length: 4, Requester: "cpu"},
			{Tick: 10, Kind: KindRead, Address: 0xc0, Length: 16, Requester: "audio"},
			{Tick: 25, Kind: KindInvalidate, Address: 0, End: 0x100},
		}))
	})

	DescribeTable("malformed lines",
		func(line string) {
			_, err := ParseTrace(strings.NewReader("0 0\n" + line + "\n"))

			var parseErr *ParseError
			Expect(errors.As(err, &parseErr)).To(BeTrue())
			Expect(parseErr.Line).To(Equal(2))
		},
		Entry("missing address", "5"),
		Entry("bad tick", "x 80"),
		Entry("bad address", "5 zz"),
		Entry("zero length", "5 80 0"),
		Entry("too many fields", "5 80 1 cpu extra"),
		Entry("bad invalidate", "5 invalidate 80"),
		Entry("reversed invalidate", "5 invalidate 80 40"),
	)

	It("should refuse ticks that go back", func() {
		_, err := ParseTrace(strings.NewReader("10 0\n5 0\n"))

		Expect(errors.Is(err, ErrTickDecreases)).To(BeTrue())
	})

	It("should fail on missing files", func() {
		_, err := LoadTrace("/nonexistent/trace.txt")

		Expect(err).To(HaveOccurred())
	})
})
