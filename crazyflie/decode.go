package crazyflie

import "github.com/mikehamer/crazycodec/crtp"

const (
	KindParamTocInfo = "param.toc.info"
	KindParamTocItem = "param.toc.item"
	KindParamRead    = "param.read"
	KindParamWrite   = "param.write"
	KindLogTocInfo   = "log.toc.info"
	KindLogTocItem   = "log.toc.item"
	KindLogControl   = "log.control"
	KindLogData      = "log.data"
	KindConsole      = "console"
	KindFrame        = "frame"
)

// Message is a decoded vehicle-to-host packet.
type Message struct {
	Header crtp.Header `json:"header"`
	Kind   string      `json:"kind"`
	Value  interface{} `json:"value"`
}

// LogData is a log data frame whose samples are still packed; see
// DecodeLogSamples.
type LogData struct {
	LogDataHeader
	Payload []byte `json:"payload"`
}

// Decode routes raw by port, channel and command to the matching parser.
// Ports without a parser come back as a crtp.Frame of kind "frame".
func Decode(raw []byte) (Message, error) {
	header, payload, err := crtp.DecodeFrame(raw)
	if err != nil {
		return Message{}, err
	}

	kind, value, err := decodePayload(header, payload)
	if err != nil {
		return Message{}, err
	}
	return Message{Header: header, Kind: kind, Value: value}, nil
}

func decodePayload(header crtp.Header, payload []byte) (string, interface{}, error) {
	switch header.Port {
	case crtp.PortConsole:
		return KindConsole, ConsoleText(payload), nil

	case crtp.PortParam:
		switch header.Channel {
		case ParamChannelToc:
			p, err := DecodeParamToc(payload)
			if err != nil {
				return "", nil, err
			}
			switch p.MessageID {
			case TocCommandInfo:
				v, err := ParseParamTocInfo(p.Payload)
				return KindParamTocInfo, v, err
			case TocCommandItem:
				v, err := ParseParamTocItem(p.Payload)
				return KindParamTocItem, v, err
			}
			return "", nil, crtp.ErrorPacketIncorrectType
		case ParamChannelRead:
			v, err := DecodeParamValue(payload)
			return KindParamRead, v, err
		case ParamChannelWrite:
			v, err := DecodeParamValue(payload)
			return KindParamWrite, v, err
		}

	case crtp.PortLog:
		switch header.Channel {
		case LogChannelToc:
			p, err := DecodeLogToc(payload)
			if err != nil {
				return "", nil, err
			}
			switch p.Command {
			case TocCommandInfo:
				v, err := ParseLogTocInfo(p.Payload)
				return KindLogTocInfo, v, err
			case TocCommandItem:
				v, err := ParseLogTocItem(p.Payload)
				return KindLogTocItem, v, err
			}
			return "", nil, crtp.ErrorPacketIncorrectType
		case LogChannelControl:
			v, err := DecodeLogControlResponse(payload)
			return KindLogControl, v, err
		case LogChannelData:
			h, samples, err := DecodeLogData(payload)
			return KindLogData, LogData{LogDataHeader: h, Payload: samples}, err
		}
	}

	return KindFrame, crtp.Frame{Header: header, Payload: payload}, nil
}
