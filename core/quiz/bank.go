package quiz

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"

	"github.com/trezcool/masomo-quiz/core"
)

// SampleBanks returns the built-in question banks.
// Each call returns fresh copies.
func SampleBanks() []*Bank {
	return []*Bank{
		{
			ID:        "mathematics",
			Title:     "Mathematics Quiz",
			Subject:   "Mathematics",
			TimeLimit: 5 * time.Minute,
			Questions: []Question{
				{
					Text:          "What is the value of x in the equation 2x + 5 = 15?",
					Options:       []string{"x = 5", "x = 10", "x = 7.5", "x = 3"},
					CorrectOption: 0,
					Explanation:   "To solve 2x + 5 = 15, subtract 5 from both sides: 2x = 10, then divide by 2: x = 5",
				},
				{
					Text:          "Which of the following is a prime number?",
					Options:       []string{"15", "21", "17", "27"},
					CorrectOption: 2,
					Explanation:   "17 is a prime number because it can only be divided by 1 and itself without remainder.",
				},
				{
					Text:          "What is the area of a rectangle with length 8cm and width 5cm?",
					Options:       []string{"13 cm²", "26 cm²", "40 cm²", "30 cm²"},
					CorrectOption: 2,
					Explanation:   "Area of rectangle = length × width = 8 × 5 = 40 cm²",
				},
				{
					Text:          "Simplify: 3(x + 4) - 2x",
					Options:       []string{"x + 12", "5x + 12", "x + 4", "3x + 2"},
					CorrectOption: 0,
					Explanation:   "3(x + 4) - 2x = 3x + 12 - 2x = x + 12",
				},
				{
					Text:          "What is 25% of 80?",
					Options:       []string{"15", "20", "25", "30"},
					CorrectOption: 1,
					Explanation:   "25% of 80 = (25/100) × 80 = 0.25 × 80 = 20",
				},
			},
		},
		{
			ID:        "chemical-reactions",
			Title:     "Chemical Reactions",
			Subject:   "Science",
			TimeLimit: 5 * time.Minute,
			Questions: []Question{
				{
					Text:          "What is the chemical formula of water?",
					Options:       []string{"CO2", "H2O", "O2", "NaCl"},
					CorrectOption: 1,
					Explanation:   "A water molecule is made of two hydrogen atoms bonded to one oxygen atom: H2O.",
				},
				{
					Text:          "Which gas is released when an acid reacts with a metal?",
					Options:       []string{"Oxygen", "Nitrogen", "Hydrogen", "Carbon dioxide"},
					CorrectOption: 2,
					Explanation:   "Metal + acid gives a salt and hydrogen gas.",
				},
				{
					Text:          "Rusting of iron is an example of which kind of reaction?",
					Options:       []string{"Oxidation", "Neutralisation", "Decomposition", "Sublimation"},
					CorrectOption: 0,
					Explanation:   "Iron reacts with oxygen (and water) to form iron oxide: it is oxidised.",
				},
			},
		},
	}
}

// bankFile is the on-disk shape of a Bank.
type bankFile struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Subject   string     `json:"subject" yaml:"subject"`
	TimeLimit string     `json:"time_limit" yaml:"time_limit"` // e.g. "5m"
	Questions []Question `json:"questions" yaml:"questions"`
}

// ParseBank decodes a Bank from r. format is a file extension: .yaml, .yml or .json.
func ParseBank(r io.Reader, format string) (*Bank, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "reading bank")
	}

	var bf bankFile
	switch strings.ToLower(format) {
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(data, &bf)
	case ".json":
		err = json.Unmarshal(data, &bf)
	default:
		return nil, errors.Errorf("unsupported bank format %q", format)
	}
	if err != nil {
		return nil, errors.Wrap(err, "decoding bank")
	}

	bank := &Bank{
		ID:        core.CleanString(bf.ID, true /* lower */),
		Title:     core.CleanString(bf.Title),
		Subject:   core.CleanString(bf.Subject),
		Questions: bf.Questions,
	}
	if bf.TimeLimit != "" {
		if bank.TimeLimit, err = time.ParseDuration(bf.TimeLimit); err != nil {
			return nil, errors.Wrapf(err, "parsing time_limit of bank %q", bank.ID)
		}
	}
	return bank, nil
}

// LoadBanks parses every .yaml, .yml and .json file of dir, in file name order.
func LoadBanks(dir string) ([]*Bank, error) {
	fps, err := filepath.Glob(filepath.Join(dir, "*"))
	if err != nil {
		return nil, errors.Wrap(err, "listing banks")
	}
	sort.Strings(fps)

	banks := make([]*Bank, 0, len(fps))
	for _, fp := range fps {
		ext := filepath.Ext(fp)
		switch strings.ToLower(ext) {
		case ".yaml", ".yml", ".json":
		default:
			continue
		}
		bank, err := loadBankFile(fp, ext)
		if err != nil {
			return nil, err
		}
		banks = append(banks, bank)
	}
	return banks, nil
}

func loadBankFile(fp, ext string) (*Bank, error) {
	f, err := os.Open(fp)
	if err != nil {
		return nil, errors.Wrap(err, "opening bank file")
	}
	//goland:noinspection GoUnhandledErrorResult
	defer f.Close()

	bank, err := ParseBank(f, ext)
	if err != nil {
		return nil, errors.Wrap(err, filepath.Base(fp))
	}
	return bank, nil
}

// Catalogue returns the sample banks followed by the banks found in dir (if any).
// Banks without a time limit get defaultLimit.
func Catalogue(dir string, defaultLimit time.Duration) ([]*Bank, error) {
	banks := SampleBanks()
	if dir != "" {
		loaded, err := LoadBanks(dir)
		if err != nil {
			return nil, err
		}
		banks = append(banks, loaded...)
	}
	for _, bank := range banks {
		if bank.TimeLimit <= 0 {
			bank.TimeLimit = defaultLimit
		}
	}
	return banks, nil
}
