package bdata

import (
	"bufio"
	"io"
	"strings"

	"git.thinkinpower.net/bindb/file"
	"git.thinkinpower.net/bindb/mod"
	"github.com/pkg/errors"
	logger "github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

//bin,country,reserved,scheme,type,brand,bank
const binDataMinFields = 7

// read parses the bin data file and also reports how many data rows were
// skipped as malformed.
func read(fs afero.Fs, filepath string) (map[string]mod.Record, int, error) {
	var (
		f   afero.File
		err error
	)
	if f, err = fs.Open(filepath); err != nil {
		return nil, 0, errors.Wrapf(err, "open bin data file %s", filepath)
	}
	defer f.Close()

	result := make(map[string]mod.Record, 4096)
	reader := bufio.NewReader(f)
	lineNum, skipped := 0, 0
	for {
		line, err := file.ReadLine(reader)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, errors.Wrapf(err, "read bin data file %s", filepath)
		}
		lineNum += 1
		//skip header
		if lineNum == 1 {
			continue
		}
		record, ok := parse(line)
		if !ok {
			logger.Debugf("skip malformed bin data, line: %d, data: %q", lineNum, line)
			skipped++
			continue
		}
		result[record.Bin] = record
	}
	return result, skipped, nil
}

// parse maps one data row by column position. A single trailing comma ends
// the row without opening an empty last field: "a,b," has two fields.
func parse(value string) (mod.Record, bool) {
	values := strings.Split(strings.TrimSuffix(value, ","), ",")
	if len(values) < binDataMinFields {
		return mod.Record{}, false
	}
	for i, v := range values {
		values[i] = trimQuotes(v)
	}
	//values[2] is reserved by the source schema
	record := mod.Record{
		Bin:     values[0],
		Country: values[1],
		Scheme:  values[3],
		Type:    values[4],
		Brand:   values[5],
		Bank:    values[6],
	}
	record.IsValid = record.Bin != "" && record.Country != ""
	return record, true
}

func trimQuotes(s string) string {
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		return s[1 : len(s)-1]
	}
	return s
}
