package display

import (
	"fmt"
	"os"

	"github.com/backmassage/hardlinker/internal/term"
)

const banner = ` _                   _ _ _       _
| |__   __ _ _ __ __| | (_)_ __ | | _____ _ __
| '_ \ / _` + "`" + ` | '__/ _` + "`" + ` | | | '_ \| |/ / _ \ '__|
| | | | (_| | | | (_| | | | | | |   <  __/ |
|_| |_|\__,_|_|  \__,_|_|_|_| |_|_|\_\___|_|`

// PrintBanner prints the ASCII art banner; magenta if colors are enabled.
func PrintBanner() {
	fmt.Fprintln(os.Stdout, term.Magenta.Render(banner))
}
