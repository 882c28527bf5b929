package formatfile_test

import (
	"fmt"
	"log"
	"time"

	"github.com/tztail/tztail-go/pkg/tztail"
	"github.com/tztail/tztail-go/pkg/tztail/formatfile"
)

func Example() {
	ff, err := formatfile.LoadBytes([]byte(`version: 1
formats:
  - name: syslog-iso
    format: "%Y-%m-%dT%H:%M:%S%:z"
`))
	if err != nil {
		log.Fatal(err)
	}

	reg, err := formatfile.NewRegistry(ff)
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(tztail.Convert("boot 2020-03-01T10:20:30+05:30 ok", reg, time.UTC))
	// Output:
	// boot 2020-03-01T04:50:30+00:00 ok
}
