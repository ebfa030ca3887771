package integrationtest

import (
	"context"
	"fmt"
	"io/ioutil"
	"net"
	"os"
	"testing"
	"time"

	"github.com/serverlessresearch/mcadmin/pkg/admin"
	"github.com/serverlessresearch/mcadmin/pkg/command"
	"github.com/serverlessresearch/mcadmin/pkg/mcmgr"
)

const (
	rootUser     = "mcadminroot"
	rootPassword = "mcadminroot-secret"
)

// Runs against real mc and minio binaries. Set MCADMIN_INTEGRATION=1 to enable.
func TestLocalServer(t *testing.T) {
	if os.Getenv("MCADMIN_INTEGRATION") == "" {
		t.Skip("MCADMIN_INTEGRATION not set")
	}

	mgr, err := mcmgr.NewManager(map[string]interface{}{})
	if err != nil {
		t.Skip("mc unavailable: ", err)
	}
	if mgr.Binaries[mcmgr.Minio] == "" {
		t.Skip("minio unavailable")
	}
	defer mgr.Destroy()

	dir, err := ioutil.TempDir("", "mcadmin-integration")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	address := freeAddress(t)
	os.Setenv("MINIO_ROOT_USER", rootUser)
	os.Setenv("MINIO_ROOT_PASSWORD", rootPassword)

	ctx, cancel := context.WithCancel(context.Background())
	server := mgr.Client.Go(ctx, admin.OpServer, command.Args{"dir": dir, "address": address})
	defer func() {
		cancel()
		server.Wait()
	}()

	c := mgr.Client
	if _, err := admin.Checked(c.HostAdd(ctx, command.Args{
		"alias": "mcadmintest", "url": "http://" + address,
		"username": rootUser, "password": rootPassword,
	})); err != nil {
		t.Fatal("Error adding host", err)
	}

	deadline := time.Now().Add(30 * time.Second)
	for {
		resp, err := c.UserList(ctx, command.Args{"target": "mcadmintest"})
		if err == nil && resp.Succeeded() {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("server did not come up: %v %v", resp, err)
		}
		time.Sleep(500 * time.Millisecond)
	}

	if _, err := admin.Checked(c.UserAdd(ctx, command.Args{
		"target": "mcadmintest", "username": "alice", "password": "alice-secret",
	})); err != nil {
		t.Fatal("Error adding user", err)
	}

	resp, err := admin.Checked(c.UserList(ctx, command.Args{"target": "mcadmintest"}))
	if err != nil {
		t.Fatal("Error listing users", err)
	}
	found := false
	for _, record := range resp.Records() {
		if record["accessKey"] == "alice" {
			found = true
		}
	}
	if !found {
		t.Fatalf("alice missing from %s", resp.JSON)
	}

	if _, err := admin.Checked(c.MakeBucket(ctx, command.Args{"target": "mcadmintest/bucket"})); err != nil {
		t.Fatal("Error making bucket", err)
	}
	if _, err := admin.Checked(c.UserRemove(ctx, command.Args{"target": "mcadmintest", "username": "alice"})); err != nil {
		t.Fatal("Error removing user", err)
	}
}

func freeAddress(t *testing.T) string {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer l.Close()
	return fmt.Sprintf("127.0.0.1:%d", l.Addr().(*net.TCPAddr).Port)
}
