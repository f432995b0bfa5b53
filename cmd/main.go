package main

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/gocarina/gocsv"
	"github.com/urfave/cli/v2"

	"github.com/svtools/sysvfs"
	"github.com/svtools/sysvfs/file_systems/common"
	"github.com/svtools/sysvfs/file_systems/sysv"
	"github.com/svtools/sysvfs/we32k"
)

func main() {
	app := cli.App{
		Name:  "sysvfs",
		Usage: "Inspect SysV filesystem images and WE32100 register values",
		Commands: []*cli.Command{
			{
				Name:      "info",
				Usage:     "Print an image's superblock summary",
				Action:    printInfo,
				ArgsUsage: "IMAGE",
			},
			{
				Name:      "ls",
				Usage:     "List an image's root directory",
				Action:    listRoot,
				ArgsUsage: "IMAGE",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "emit the listing as CSV instead of a table",
					},
				},
			},
			{
				Name:      "usage",
				Usage:     "Cross-reference the free list with the root directory's blocks",
				Action:    surveyUsage,
				ArgsUsage: "IMAGE",
			},
			{
				Name:      "psw",
				Usage:     "Decode a processor status word",
				Action:    decodeStatusWord,
				ArgsUsage: "HEX_VALUE",
			},
			{
				Name:      "sd",
				Usage:     "Decode a segment descriptor",
				Action:    decodeSegmentDescriptor,
				ArgsUsage: "HEX_VALUE",
			},
			{
				Name:      "vaddr",
				Usage:     "Decode a paged virtual address",
				Action:    decodePagedAddress,
				ArgsUsage: "HEX_VALUE",
			},
		},
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func openFileSystem(context *cli.Context) (*sysv.FileSystem, *common.Image, error) {
	if context.NArg() != 1 {
		return nil, nil, sysvfs.ErrInvalidArgument.WithMessage(
			"expected exactly one argument, the path to a disk image")
	}

	image, err := common.OpenImage(context.Args().First())
	if err != nil {
		return nil, nil, err
	}

	fs, err := sysv.Open(image)
	if err != nil {
		image.Close()
		return nil, nil, err
	}
	return fs, image, nil
}

func printInfo(context *cli.Context) error {
	fs, image, err := openFileSystem(context)
	if err != nil {
		return err
	}
	defer image.Close()

	sb := fs.Superblock
	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintf(writer, "Size in blocks of i-list:\t%d\n", sb.InodeListBlocks)
	fmt.Fprintf(writer, "Size of inode list in entries:\t%d\n", sb.InodeListCapacity)
	fmt.Fprintf(writer, "Size in blocks of entire volume:\t%d\n", sb.VolumeBlocks)
	fmt.Fprintf(writer, "Cached free inodes:\t%d\n", sb.CachedFreeInodes)
	fmt.Fprintf(writer, "Cached free blocks:\t%d\n", sb.CachedFreeBlocks)
	fmt.Fprintf(writer, "Total free inodes:\t%d\n", sb.TotalFreeInodes)
	fmt.Fprintf(writer, "Total free blocks:\t%d\n", sb.TotalFreeBlocks)
	fmt.Fprintf(writer, "File system type:\t%d (%d-byte blocks)\n", sb.Type, sb.BlockSize)
	fmt.Fprintf(writer, "File system state:\t0x%x\n", sb.State)
	fmt.Fprintf(writer, "File system name:\t%s\n", sb.VolumeLabel)
	fmt.Fprintf(writer, "Pack name:\t%s\n", sb.PackLabel)
	fmt.Fprintf(
		writer,
		"Last superblock update:\t%s\n",
		sb.LastUpdatedAt.Format("2006-01-02 15:04:05"))
	return writer.Flush()
}

// listingRow is the presentation shape of one root-directory entry, for both
// the tabular and CSV listings.
type listingRow struct {
	Inumber     uint32 `csv:"inode"`
	Name        string `csv:"name"`
	FileType    uint8  `csv:"type"`
	Permissions string `csv:"permissions"`
}

func listRoot(context *cli.Context) error {
	fs, image, err := openFileSystem(context)
	if err != nil {
		return err
	}
	defer image.Close()

	entries, err := fs.ReadRootDirectory()
	if err != nil {
		return err
	}

	rows := make([]listingRow, len(entries))
	for i, entry := range entries {
		rows[i] = listingRow{
			Inumber:     uint32(entry.Inumber),
			Name:        entry.Name,
			FileType:    entry.FileType,
			Permissions: fmt.Sprintf("%04o", entry.Permissions),
		}
	}

	if context.Bool("csv") {
		return gocsv.Marshal(&rows, os.Stdout)
	}

	writer := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(writer, "INODE\tNAME\tTYPE\tPERMS")
	for _, row := range rows {
		fmt.Fprintf(
			writer, "%d\t%s\t%d\t%s\n", row.Inumber, row.Name, row.FileType, row.Permissions)
	}
	return writer.Flush()
}

func surveyUsage(context *cli.Context) error {
	fs, image, err := openFileSystem(context)
	if err != nil {
		return err
	}
	defer image.Close()

	root, err := fs.RootInode()
	if err != nil {
		return err
	}

	usage := sysv.SurveyBlockUsage(fs.Superblock, root)
	fmt.Printf("Blocks on volume:          %d\n", usage.TotalBlocks)
	fmt.Printf("Cached free blocks:        %d\n", usage.FreeListed)
	fmt.Printf("Root directory blocks:     %d\n", usage.Referenced)

	if len(usage.Overlapping) == 0 {
		fmt.Println("No overlap between the free list and the root directory.")
		return nil
	}
	for _, address := range usage.Overlapping {
		fmt.Printf("Block %d is both free-listed and referenced by the root directory\n", address)
	}
	return nil
}

func parseRegisterValue(context *cli.Context) (uint32, error) {
	if context.NArg() != 1 {
		return 0, sysvfs.ErrInvalidArgument.WithMessage(
			"expected exactly one argument, a hexadecimal register value")
	}

	text := strings.TrimPrefix(strings.ToLower(context.Args().First()), "0x")
	value, err := strconv.ParseUint(text, 16, 32)
	if err != nil {
		return 0, sysvfs.ErrInvalidArgument.Wrap(err)
	}
	return uint32(value), nil
}

func decodeStatusWord(context *cli.Context) error {
	value, err := parseRegisterValue(context)
	if err != nil {
		return err
	}

	psw := we32k.DecodeStatusWord(value)
	fmt.Printf("PSW: 0x%x\n\n", value)
	fmt.Printf("ET:\t%d\t(%s)\n", uint8(psw.ET), psw.ET)
	fmt.Printf("TM:\t%s\n", flagBit(psw.TM))
	fmt.Printf("ISC:\t%04bb\n", psw.ISC)
	fmt.Printf("I:\t%s\n", flagBit(psw.I))
	fmt.Printf("R:\t%s\n", flagBit(psw.R))
	fmt.Printf("PM:\t%d\t(%s)\n", uint8(psw.PM), psw.PM)
	fmt.Printf("CM:\t%d\t(%s)\n", uint8(psw.CM), psw.CM)
	fmt.Printf("IPL:\t%04bb\n", psw.IPL)
	fmt.Printf("TE:\t%s\n", flagBit(psw.TE))
	fmt.Printf("C Flag:\t%s\n", flagBit(psw.C))
	fmt.Printf("V Flag:\t%s\n", flagBit(psw.V))
	fmt.Printf("Z Flag:\t%s\n", flagBit(psw.Z))
	fmt.Printf("N Flag:\t%s\n", flagBit(psw.N))
	fmt.Printf("OE:\t%s\n", flagBit(psw.OE))
	fmt.Printf("CD:\t%s\n", flagBit(psw.CD))
	fmt.Printf("QIE:\t%s\n", flagBit(psw.QIE))
	fmt.Printf("CFD:\t%s\n", flagBit(psw.CFD))
	return nil
}

func decodeSegmentDescriptor(context *cli.Context) error {
	value, err := parseRegisterValue(context)
	if err != nil {
		return err
	}

	sd := we32k.DecodeSegmentDescriptor(value)
	fmt.Printf("     Segment Descriptor 0x%08x\n\n", value)
	fmt.Printf("Present:     %s\n", flagBit(sd.Present))
	fmt.Printf("Modified:    %s\n", flagBit(sd.Modified))
	fmt.Printf("Contiguous:  %s\n", flagBit(sd.Contiguous))
	fmt.Printf("Cacheable:   %s\n", flagBit(sd.Cacheable))
	fmt.Printf("Object Trap: %s\n", flagBit(sd.ObjectTrap))
	fmt.Printf("Referenced:  %s\n", flagBit(sd.Referenced))
	fmt.Printf("Valid:       %s\n", flagBit(sd.Valid))
	fmt.Printf("Indirect:    %s\n", flagBit(sd.Indirect))
	fmt.Printf("Max Offset:  %04x\n", sd.MaxOffset)
	fmt.Printf("Access:      %02x\n", sd.Access)
	return nil
}

func decodePagedAddress(context *cli.Context) error {
	value, err := parseRegisterValue(context)
	if err != nil {
		return err
	}

	decoded := we32k.DecodePagedAddress(value)
	fmt.Printf("     Paged Virtual Address 0x%08x\n\n", value)
	fmt.Printf("    TAG=%04x    IDX=%04x\n", decoded.Tag, decoded.Index)
	return nil
}

func flagBit(set bool) string {
	if set {
		return "1"
	}
	return "0"
}
