package cli

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/spf13/cobra"
)

func init() {
	sessionCmd := &cobra.Command{
		Use:   "session",
		Short: "Session ID helpers",
		Long: `Helpers for session IDs used to group related memories.

EXAMPLE:
  SID=$(mem session new)
  mem remember "auth refactor kickoff" --session "$SID"`,
	}

	sessionCmd.AddCommand(&cobra.Command{
		Use:   "new",
		Short: "Mint a fresh session ID",
		Run:   runSessionNew,
	})

	RootCmd.AddCommand(sessionCmd)
}

func runSessionNew(cmd *cobra.Command, args []string) {
	entropy := rand.New(rand.NewSource(time.Now().UnixNano()))
	fmt.Println(ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String())
}
