package asyncio_test

import (
	"net"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sabouaram/fixnative/asyncio"
)

func drive(r *asyncio.Reactor, timeout time.Duration, done func() bool) {
	deadline := time.Now().Add(timeout)
	for !done() && time.Now().Before(deadline) {
		r.Process(20*time.Millisecond, false)
	}
}

var _ = Describe("Reactor TCP client/server", func() {
	It("accepts a connection and exchanges data", func() {
		r := asyncio.New()
		srv, err := r.CreateServer(0, true)
		Expect(err).NotTo(HaveOccurred())
		defer srv.Close()

		port := srv.Addr().(*net.TCPAddr).Port

		var serverConn *asyncio.Conn
		Expect(srv.Accept(func(c *asyncio.Conn, err error) {
			Expect(err).NotTo(HaveOccurred())
			serverConn = c
		})).To(Succeed())

		var clientConn *asyncio.Conn
		r.OpenConnection("127.0.0.1", port, func(c *asyncio.Conn, err error) {
			Expect(err).NotTo(HaveOccurred())
			clientConn = c
		})

		drive(r, 2*time.Second, func() bool { return serverConn != nil && clientConn != nil })
		Expect(serverConn).NotTo(BeNil())
		Expect(clientConn).NotTo(BeNil())

		var n int
		Expect(clientConn.Write([]byte("hello"), func(wn int, werr error) {
			Expect(werr).NotTo(HaveOccurred())
			n = wn
		})).To(Succeed())

		buf := make([]byte, 16)
		var gotN int
		var gotErr error
		read := false
		Expect(serverConn.Read(buf, func(rn int, rerr error) {
			gotN, gotErr = rn, rerr
			read = true
		})).To(Succeed())

		drive(r, 2*time.Second, func() bool { return read && n > 0 })
		Expect(n).To(Equal(5))
		Expect(gotErr).NotTo(HaveOccurred())
		Expect(string(buf[:gotN])).To(Equal("hello"))
	})

	It("refuses a second concurrent read on the same handle (A1)", func() {
		r := asyncio.New()
		srv, err := r.CreateServer(0, true)
		Expect(err).NotTo(HaveOccurred())
		defer srv.Close()
		port := srv.Addr().(*net.TCPAddr).Port

		var serverConn *asyncio.Conn
		Expect(srv.Accept(func(c *asyncio.Conn, err error) { serverConn = c })).To(Succeed())

		var clientConn *asyncio.Conn
		r.OpenConnection("127.0.0.1", port, func(c *asyncio.Conn, err error) { clientConn = c })
		drive(r, 2*time.Second, func() bool { return serverConn != nil && clientConn != nil })

		buf := make([]byte, 16)
		Expect(serverConn.Read(buf, func(int, error) {})).To(Succeed())
		err = serverConn.Read(buf, func(int, error) {})
		Expect(err).To(HaveOccurred())
	})

	It("never invokes a callback after the handle is closed (A2)", func() {
		r := asyncio.New()
		srv, err := r.CreateServer(0, true)
		Expect(err).NotTo(HaveOccurred())
		defer srv.Close()
		port := srv.Addr().(*net.TCPAddr).Port

		var serverConn *asyncio.Conn
		Expect(srv.Accept(func(c *asyncio.Conn, err error) { serverConn = c })).To(Succeed())
		var clientConn *asyncio.Conn
		r.OpenConnection("127.0.0.1", port, func(c *asyncio.Conn, err error) { clientConn = c })
		drive(r, 2*time.Second, func() bool { return serverConn != nil && clientConn != nil })

		called := false
		buf := make([]byte, 16)
		Expect(serverConn.Read(buf, func(int, error) { called = true })).To(Succeed())
		Expect(serverConn.Close()).To(Succeed())

		// Give the in-flight read goroutine a chance to complete and post
		// (it will observe the connection closed and return early, or the
		// reactor's dispatch will see the handle closed and skip it).
		drive(r, 500*time.Millisecond, func() bool { return false })
		Expect(called).To(BeFalse())
	})

	It("fires timers in non-decreasing fire-time order (A3)", func() {
		r := asyncio.New()
		var order []int

		r.RunLater(30*time.Millisecond, func() { order = append(order, 3) })
		r.RunLater(0, func() { order = append(order, 0) })
		r.RunLater(10*time.Millisecond, func() { order = append(order, 1) })
		r.RunLater(20*time.Millisecond, func() { order = append(order, 2) })

		drive(r, 2*time.Second, func() bool { return len(order) == 4 })
		Expect(order).To(Equal([]int{0, 1, 2, 3}))
	})

	It("quit() makes the next process() turn report the quit value", func() {
		r := asyncio.New()
		r.RunLater(0, func() { r.Quit(42) })

		var value int
		var quit bool
		drive(r, 2*time.Second, func() bool {
			value, quit = r.Process(10*time.Millisecond, false)
			return quit
		})
		Expect(quit).To(BeTrue())
		Expect(value).To(Equal(42))
	})

	It("CloseAll closes every handle concurrently", func() {
		r := asyncio.New()
		srvA, err := r.CreateServer(0, true)
		Expect(err).NotTo(HaveOccurred())
		srvB, err := r.CreateServer(0, true)
		Expect(err).NotTo(HaveOccurred())

		Expect(asyncio.CloseAll(srvA, srvB)).To(Succeed())
		Expect(srvA.Accept(func(*asyncio.Conn, error) {})).To(HaveOccurred())
		Expect(srvB.Accept(func(*asyncio.Conn, error) {})).To(HaveOccurred())
	})
})
