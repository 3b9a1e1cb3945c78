package sim

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Name", func() {
	It("parses dotted, indexed tokens", func() {
		n := ParseName("Mesh.Node[3].InPort")
		Expect(n.Tokens).To(HaveLen(3))
		Expect(n.Tokens[0].ElemName).To(Equal("Mesh"))
		Expect(n.Tokens[1].ElemName).To(Equal("Node"))
		Expect(n.Tokens[1].Index).To(Equal([]int{3}))
		Expect(n.Tokens[2].ElemName).To(Equal("InPort"))
	})

	It("rejects mismatched brackets", func() {
		Expect(func() { ParseName("Node[3") }).To(Panic())
		Expect(func() { ParseName("Node]3[") }).To(Panic())
	})

	DescribeTable("NameMustBeValid",
		func(name string, wantPanic bool) {
			if wantPanic {
				Expect(func() { NameMustBeValid(name) }).To(Panic())
			} else {
				Expect(func() { NameMustBeValid(name) }).NotTo(Panic())
			}
		},
		Entry("simple capitalized token", "Sender", false),
		Entry("hierarchical dotted name", "Mesh.Node[3].InPort", false),
		Entry("empty token", "", true),
		Entry("lowercase start", "sender", true),
		Entry("contains underscore", "Send_er", true),
		Entry("contains hyphen", "Send-er", true),
	)

	It("builds plain and indexed child names", func() {
		Expect(BuildName("Mesh", "Node")).To(Equal("Mesh.Node"))
		Expect(BuildName("", "Node")).To(Equal("Node"))
		Expect(BuildNameWithIndex("Mesh", "Node", 3)).To(Equal("Mesh.Node[3]"))
	})
})
